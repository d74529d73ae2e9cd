package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Abyteon/vhr-parser/pkg/codec"
	"github.com/Abyteon/vhr-parser/pkg/decode"
	"github.com/Abyteon/vhr-parser/pkg/metrics"
	"github.com/Abyteon/vhr-parser/pkg/mmap"
	"github.com/Abyteon/vhr-parser/pkg/writer"
)

// Processor converts one container file into one columnar output file. It is
// stateless across files and safe to share between workers.
type Processor struct {
	InputRoot  string
	OutputRoot string
	Decoder    decode.FrameDecoder
	Writer     writer.RowWriter
}

// ProcessFile runs the full per-file pipeline: map, extract, decode,
// accumulate, write. The first failure aborts the file; the writer only runs
// once the complete row collection is ready, so no partial output file is
// left behind.
func (p *Processor) ProcessFile(path string) FileResult {
	res := FileResult{InputPath: path}

	outPath, err := p.OutputPath(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.OutputPath = outPath

	rows, err := p.extractRows(path)
	if err != nil {
		res.Err = err
		return res
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		res.Err = fmt.Errorf("create output directory: %w", err)
		return res
	}
	if err := p.Writer.Write(rows, outPath); err != nil {
		res.Err = err
		return res
	}

	res.Rows = len(rows)
	return res
}

// extractRows maps the input file and drains the frame extractor into an
// ordered row collection. The mapping is released on every return path.
func (p *Processor) extractRows(path string) ([]decode.Row, error) {
	buf, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	m := metrics.Default()
	m.AddBytesMapped(buf.Len())

	var rows []decode.Row
	frames := 0

	ex := codec.NewFrameExtractor(buf.Bytes())
	for ex.Next() {
		frame := ex.Frame()
		frames++

		decoded, err := p.Decoder.DecodeFrame(frame.SourceID, frame.Bytes)
		if err != nil {
			return nil, fmt.Errorf("decode frame from %s: %w", frame.SourceID, err)
		}
		rows = append(rows, decoded...)
	}
	if err := ex.Err(); err != nil {
		return nil, err
	}

	m.AddFrames(frames)
	m.AddRows(len(rows))
	return rows, nil
}

// OutputPath mirrors the input's path under the output root with the output
// extension.
func (p *Processor) OutputPath(path string) (string, error) {
	rel, err := filepath.Rel(p.InputRoot, path)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", path, err)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + OutputExt
	return filepath.Join(p.OutputRoot, rel), nil
}
