// Package writer serializes decoded rows into columnar output files.
package writer

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/Abyteon/vhr-parser/pkg/decode"
)

// RowWriter serializes a file's accumulated rows to a single output file.
type RowWriter interface {
	Write(rows []decode.Row, path string) error
}

// ParquetWriter writes snappy-compressed parquet files. The schema is
// inferred from the union of row columns; columns are sorted by name so
// output is deterministic for a given input.
type ParquetWriter struct{}

// NewParquetWriter creates a parquet row writer.
func NewParquetWriter() *ParquetWriter {
	return &ParquetWriter{}
}

func (w *ParquetWriter) Write(rows []decode.Row, path string) error {
	schema, err := inferSchema(rows)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeRows(f, schema, rows); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func writeRows(f *os.File, schema *parquet.Schema, rows []decode.Row) error {
	pw := parquet.NewGenericWriter[map[string]any](f, schema, parquet.Compression(&parquet.Snappy))

	records := make([]map[string]any, len(rows))
	for i, row := range rows {
		records[i] = normalizeRow(row)
	}
	if len(records) > 0 {
		if _, err := pw.Write(records); err != nil {
			return err
		}
	}
	return pw.Close()
}

// inferSchema builds an all-optional schema from the union of row columns.
// An empty row set still produces a valid file with a single marker column.
func inferSchema(rows []decode.Row) (*parquet.Schema, error) {
	group := parquet.Group{}
	for _, row := range rows {
		for name, value := range row {
			node, err := nodeOf(value)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", name, err)
			}
			if prev, ok := group[name]; ok {
				if prev.Type().Kind() != parquet.Optional(node).Type().Kind() {
					return nil, fmt.Errorf("column %s: mixed value types", name)
				}
				continue
			}
			group[name] = parquet.Optional(node)
		}
	}
	if len(group) == 0 {
		group["source_id"] = parquet.Optional(parquet.String())
	}
	return parquet.NewSchema("rows", group), nil
}

func nodeOf(value any) (parquet.Node, error) {
	switch value.(type) {
	case string:
		return parquet.String(), nil
	case bool:
		return parquet.Leaf(parquet.BooleanType), nil
	case int, int32, int64:
		return parquet.Int(64), nil
	case float32, float64:
		return parquet.Leaf(parquet.DoubleType), nil
	case []byte:
		return parquet.Leaf(parquet.ByteArrayType), nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}

// normalizeRow widens integer and float values so every column has a single
// physical type.
func normalizeRow(row decode.Row) map[string]any {
	out := make(map[string]any, len(row))
	for name, value := range row {
		switch v := value.(type) {
		case int:
			out[name] = int64(v)
		case int32:
			out[name] = int64(v)
		case float32:
			out[name] = float64(v)
		default:
			out[name] = v
		}
	}
	return out
}
