// Package decode turns extracted bus frames into named-column rows.
//
// A frame starts with a 4-byte big-endian message identifier followed by the
// message data bytes. The SignalDecoder scales raw signal values against a
// signal database; the RawDecoder passes frames through undecoded.
package decode

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// MessageIDSize is the width of the message identifier at the start of every
// frame.
const MessageIDSize = 4

// Row maps column names to decoded values. The output writer canonicalizes
// column order; within a file, rows keep extraction order.
type Row map[string]any

// FrameDecoder produces zero or more rows from a single frame. Implementations
// must be safe for concurrent use: the pipeline calls them from many workers.
type FrameDecoder interface {
	DecodeFrame(sourceID string, frame []byte) ([]Row, error)
}

// RawDecoder emits one row per frame with the payload hex-encoded. It is the
// fallback when no signal database is configured.
type RawDecoder struct{}

func (RawDecoder) DecodeFrame(sourceID string, frame []byte) ([]Row, error) {
	if len(frame) < MessageIDSize {
		return nil, fmt.Errorf("frame too short: %d bytes", len(frame))
	}

	row := Row{
		"source_id":  sourceID,
		"message_id": int64(binary.BigEndian.Uint32(frame[:MessageIDSize])),
		"data":       hex.EncodeToString(frame[MessageIDSize:]),
		"length":     int64(len(frame) - MessageIDSize),
	}
	return []Row{row}, nil
}
