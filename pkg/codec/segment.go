package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/gzip"
)

// Segment is one decoded layer-1 record: an 18-byte source identifier and the
// decompressed block payload.
type Segment struct {
	SourceID string
	Header   []byte
	Payload  []byte
	Offset   int64 // byte position of the header in the enclosing buffer
}

// SegmentIterator lazily decodes layer-1 segments from a byte span.
type SegmentIterator struct {
	buf []byte
	off int
	seg Segment
	err error
}

// NewSegmentIterator returns an iterator over the segments in buf. The
// iterator holds a read-only view into buf; only decompression allocates.
func NewSegmentIterator(buf []byte) *SegmentIterator {
	return &SegmentIterator{buf: buf}
}

// Next advances to the next segment. It returns false when fewer bytes remain
// than a full header plus declared payload (trailing partial data is
// discarded), or when decompression fails; check Err to distinguish.
func (it *SegmentIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.off+SegmentHeaderSize > len(it.buf) {
		return false
	}

	header := it.buf[it.off : it.off+SegmentHeaderSize]
	n := int(binary.BigEndian.Uint32(header[segmentLengthOffset:]))
	if it.off+SegmentHeaderSize+n > len(it.buf) {
		return false
	}

	comp := it.buf[it.off+SegmentHeaderSize : it.off+SegmentHeaderSize+n]
	payload, err := gunzip(comp)
	if err != nil {
		it.err = &CorruptSegmentError{
			Offset:   int64(it.off),
			SourceID: string(header[:SourceIDSize]),
			Err:      err,
		}
		return false
	}

	it.seg = Segment{
		SourceID: string(header[:SourceIDSize]),
		Header:   header,
		Payload:  payload,
		Offset:   int64(it.off),
	}
	it.off += SegmentHeaderSize + n
	return true
}

// Segment returns the segment decoded by the last successful Next.
func (it *SegmentIterator) Segment() Segment {
	return it.seg
}

// Err returns the error that ended iteration, if any. Truncation is not an
// error; only a corrupt compressed payload surfaces here.
func (it *SegmentIterator) Err() error {
	return it.err
}

func gunzip(comp []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(comp))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	return out, nil
}
