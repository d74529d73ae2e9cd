package decode

import (
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Signal defines how one value is extracted from a message's data bytes.
type Signal struct {
	Name      string  `yaml:"name"`
	StartBit  int     `yaml:"start_bit"`
	Length    int     `yaml:"length"`
	ByteOrder string  `yaml:"byte_order"` // "big" (default) or "little"
	Signed    bool    `yaml:"signed"`
	Factor    float64 `yaml:"factor"` // defaults to 1
	Offset    float64 `yaml:"offset"`
	Unit      string  `yaml:"unit"`
}

// Message groups the signals carried by one bus message identifier.
type Message struct {
	ID      uint32   `yaml:"id"`
	Name    string   `yaml:"name"`
	Signals []Signal `yaml:"signals"`
}

// SignalDatabase is the YAML signal definition document.
type SignalDatabase struct {
	Messages []Message `yaml:"messages"`
}

// LoadSignalDatabase reads and validates a signal database file.
func LoadSignalDatabase(path string) (*SignalDatabase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signal database: %w", err)
	}

	var db SignalDatabase
	if err := yaml.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parse signal database: %w", err)
	}

	for mi := range db.Messages {
		msg := &db.Messages[mi]
		if msg.Name == "" {
			return nil, fmt.Errorf("message 0x%x has no name", msg.ID)
		}
		for si := range msg.Signals {
			sig := &msg.Signals[si]
			if sig.Name == "" {
				return nil, fmt.Errorf("message %s: signal %d has no name", msg.Name, si)
			}
			if sig.Length <= 0 || sig.Length > 64 {
				return nil, fmt.Errorf("message %s: signal %s: bit length %d out of range", msg.Name, sig.Name, sig.Length)
			}
			switch sig.ByteOrder {
			case "", "big", "little":
			default:
				return nil, fmt.Errorf("message %s: signal %s: unknown byte order %q", msg.Name, sig.Name, sig.ByteOrder)
			}
			if sig.Factor == 0 {
				sig.Factor = 1
			}
		}
	}
	return &db, nil
}

// SignalDecoder decodes frames against a signal database. Frames whose
// message identifier is not in the database yield zero rows, matching a
// decoder driven by a partial database.
type SignalDecoder struct {
	messages map[uint32]Message
}

// NewSignalDecoder builds a decoder from a loaded signal database.
func NewSignalDecoder(db *SignalDatabase) *SignalDecoder {
	messages := make(map[uint32]Message, len(db.Messages))
	for _, msg := range db.Messages {
		messages[msg.ID] = msg
	}
	return &SignalDecoder{messages: messages}
}

// DecodeFrame extracts one row with all of the message's signals scaled to
// physical values.
func (d *SignalDecoder) DecodeFrame(sourceID string, frame []byte) ([]Row, error) {
	if len(frame) < MessageIDSize {
		return nil, fmt.Errorf("frame too short: %d bytes", len(frame))
	}

	id := binary.BigEndian.Uint32(frame[:MessageIDSize])
	msg, ok := d.messages[id]
	if !ok {
		return nil, nil
	}

	data := frame[MessageIDSize:]
	row := Row{
		"source_id": sourceID,
		"message":   msg.Name,
	}
	for _, sig := range msg.Signals {
		raw, err := extractBits(data, sig.StartBit, sig.Length, sig.ByteOrder == "little")
		if err != nil {
			return nil, fmt.Errorf("message %s: signal %s: %w", msg.Name, sig.Name, err)
		}

		value := int64(raw)
		if sig.Signed && raw&(1<<(sig.Length-1)) != 0 {
			value = int64(raw) - (1 << sig.Length)
		}
		row[sig.Name] = float64(value)*sig.Factor + sig.Offset
	}
	return []Row{row}, nil
}

// extractBits reads an unsigned bit field from data. Little-endian signals
// number bits LSB-first within each byte; big-endian signals MSB-first.
func extractBits(data []byte, start, length int, littleEndian bool) (uint64, error) {
	if start < 0 || start+length > len(data)*8 {
		return 0, fmt.Errorf("bit range [%d,%d) outside %d data bytes", start, start+length, len(data))
	}

	var v uint64
	if littleEndian {
		for i := length - 1; i >= 0; i-- {
			bit := start + i
			v = v<<1 | uint64(data[bit/8]>>(bit%8)&1)
		}
		return v, nil
	}
	for i := 0; i < length; i++ {
		bit := start + i
		v = v<<1 | uint64(data[bit/8]>>(7-bit%8)&1)
	}
	return v, nil
}
