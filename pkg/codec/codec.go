package codec

import (
	"encoding/binary"
	"fmt"
)

// Layer-1 segment framing.
const (
	// SegmentHeaderSize is the fixed size of a layer-1 segment header.
	SegmentHeaderSize = 35
	// SourceIDSize is the fixed width of the ASCII source identifier at the
	// start of a segment header.
	SourceIDSize = 18

	segmentLengthOffset = 31
)

// SpanLayout describes the fixed framing of one inner layer: a fixed-size
// header containing a big-endian payload length field.
type SpanLayout struct {
	HeaderSize   int
	LengthOffset int
	LengthSize   int // 2 or 4 bytes
}

// Framing layouts for layers 2 through 4.
var (
	// BlockLayout frames the records inside a decompressed segment payload.
	BlockLayout = SpanLayout{HeaderSize: 16, LengthOffset: 14, LengthSize: 2}
	// SequenceLayout frames the records inside a block payload.
	SequenceLayout = SpanLayout{HeaderSize: 8, LengthOffset: 4, LengthSize: 4}
	// FrameLayout frames the terminal bus frames inside a sequence payload.
	FrameLayout = SpanLayout{HeaderSize: 4, LengthOffset: 2, LengthSize: 2}
)

func (l SpanLayout) payloadLength(header []byte) int {
	if l.LengthSize == 2 {
		return int(binary.BigEndian.Uint16(header[l.LengthOffset:]))
	}
	return int(binary.BigEndian.Uint32(header[l.LengthOffset:]))
}

func (l SpanLayout) putPayloadLength(header []byte, n int) {
	if l.LengthSize == 2 {
		binary.BigEndian.PutUint16(header[l.LengthOffset:], uint16(n))
		return
	}
	binary.BigEndian.PutUint32(header[l.LengthOffset:], uint32(n))
}

// ErrSourceIDSize is returned when encoding a segment whose source identifier
// is not exactly SourceIDSize bytes.
var ErrSourceIDSize = &CodecError{Message: fmt.Sprintf("source id must be exactly %d bytes", SourceIDSize)}

// CodecError represents a container encoding error.
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// CorruptSegmentError reports a layer-1 segment whose compressed payload could
// not be decompressed. Offset is the byte position of the segment header in
// the mapped buffer.
type CorruptSegmentError struct {
	Offset   int64
	SourceID string
	Err      error
}

func (e *CorruptSegmentError) Error() string {
	return fmt.Sprintf("corrupt segment at offset %d (source %s): %v", e.Offset, e.SourceID, e.Err)
}

func (e *CorruptSegmentError) Unwrap() error {
	return e.Err
}
