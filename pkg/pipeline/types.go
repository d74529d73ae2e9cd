// Package pipeline drives container extraction across whole directories: it
// maps each input file, extracts its frames, decodes them into rows, and
// writes one columnar output file per input, fanning files out to a bounded
// worker pool with per-file fault isolation.
package pipeline

// File extensions handled by the pipeline.
const (
	InputExt  = ".bin"
	OutputExt = ".parquet"
)

// FileResult reports the outcome of converting a single input file.
type FileResult struct {
	InputPath  string
	OutputPath string
	Rows       int
	Skipped    bool
	Err        error
}

// Summary aggregates a whole directory run. Failures holds one entry per
// failed file, in completion order.
type Summary struct {
	RunID     string
	Processed int
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []FileResult
}
