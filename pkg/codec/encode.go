package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klauspost/compress/gzip"
)

// EncodeSegment serializes one layer-1 segment: a 35-byte header followed by
// the gzip-compressed payload. sourceID must be exactly SourceIDSize bytes.
func EncodeSegment(sourceID string, payload []byte) ([]byte, error) {
	if len(sourceID) != SourceIDSize {
		return nil, ErrSourceIDSize
	}

	var comp bytes.Buffer
	zw := gzip.NewWriter(&comp)
	if _, err := zw.Write(payload); err != nil {
		return nil, fmt.Errorf("compress segment payload: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress segment payload: %w", err)
	}
	if comp.Len() > math.MaxUint32 {
		return nil, &CodecError{Message: "segment payload too large"}
	}

	buf := make([]byte, SegmentHeaderSize+comp.Len())
	copy(buf, sourceID)
	binary.BigEndian.PutUint32(buf[segmentLengthOffset:], uint32(comp.Len()))
	copy(buf[SegmentHeaderSize:], comp.Bytes())
	return buf, nil
}

// EncodeSpan serializes one record in the given layout: a zeroed header with
// the payload length set, followed by the payload.
func EncodeSpan(layout SpanLayout, payload []byte) ([]byte, error) {
	limit := int64(math.MaxUint32)
	if layout.LengthSize == 2 {
		limit = math.MaxUint16
	}
	if int64(len(payload)) > limit {
		return nil, &CodecError{Message: fmt.Sprintf("payload of %d bytes exceeds %d-byte length field", len(payload), layout.LengthSize)}
	}

	buf := make([]byte, layout.HeaderSize+len(payload))
	layout.putPayloadLength(buf, len(payload))
	copy(buf[layout.HeaderSize:], payload)
	return buf, nil
}
