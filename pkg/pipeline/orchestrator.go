package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/Abyteon/vhr-parser/pkg/decode"
	"github.com/Abyteon/vhr-parser/pkg/manifest"
	"github.com/Abyteon/vhr-parser/pkg/metrics"
	"github.com/Abyteon/vhr-parser/pkg/writer"
)

// manifestDir is where the resume manifest lives under the output root.
const manifestDir = ".vhr-manifest"

// OrchestratorConfig holds configuration for a directory run.
type OrchestratorConfig struct {
	InputRoot  string
	OutputRoot string
	Workers    int  // 0 means one per CPU
	Resume     bool // skip inputs unchanged since a previous run
}

// Orchestrator fans a directory of container files out to a fixed worker
// pool. Workers share nothing but the job and result channels; each file's
// mapping, extractor, and row collection are private to its worker.
type Orchestrator struct {
	cfg       OrchestratorConfig
	processor *Processor
	log       zerolog.Logger
}

// NewOrchestrator wires a directory run. A zero or negative worker count
// defaults to the number of CPUs.
func NewOrchestrator(cfg OrchestratorConfig, dec decode.FrameDecoder, w writer.RowWriter, log zerolog.Logger) *Orchestrator {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &Orchestrator{
		cfg: cfg,
		processor: &Processor{
			InputRoot:  cfg.InputRoot,
			OutputRoot: cfg.OutputRoot,
			Decoder:    dec,
			Writer:     w,
		},
		log: log,
	}
}

// Run discovers input files and converts them. A single file's failure never
// cancels or blocks the others; cancelling ctx stops submission of new files
// while in-flight files run to completion.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	files, err := o.discover()
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: ksuid.New().String()}
	o.log.Info().
		Str("run_id", summary.RunID).
		Int("files", len(files)).
		Int("workers", o.cfg.Workers).
		Msg("starting conversion run")

	var man *manifest.Manifest
	if o.cfg.Resume {
		if err := os.MkdirAll(o.cfg.OutputRoot, 0755); err != nil {
			return nil, fmt.Errorf("create output root: %w", err)
		}
		man, err = manifest.Open(filepath.Join(o.cfg.OutputRoot, manifestDir))
		if err != nil {
			return nil, err
		}
		defer man.Close()

		files = o.filterFresh(files, man, summary)
	}

	m := metrics.Default()
	total := len(files)

	jobs := make(chan string)
	results := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < o.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				start := time.Now()
				res := o.processor.ProcessFile(path)
				status := metrics.StatusSuccess
				if res.Err != nil {
					status = metrics.StatusFailure
				}
				m.RecordFile(status, time.Since(start))
				results <- res
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				o.log.Warn().Msg("run cancelled; waiting for in-flight files")
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		summary.Processed++
		o.collect(res, summary, total, man)
	}

	o.log.Info().
		Str("run_id", summary.RunID).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped).
		Msg("conversion run finished")
	return summary, nil
}

// collect folds one completed file into the summary, in completion order.
func (o *Orchestrator) collect(res FileResult, summary *Summary, total int, man *manifest.Manifest) {
	if res.Err != nil {
		summary.Failed++
		summary.Failures = append(summary.Failures, res)
		o.log.Error().
			Err(res.Err).
			Str("input", res.InputPath).
			Int("done", summary.Processed).
			Int("total", total).
			Msg("file failed")
		return
	}

	summary.Succeeded++
	o.log.Info().
		Str("input", res.InputPath).
		Str("output", res.OutputPath).
		Int("rows", res.Rows).
		Int("done", summary.Processed).
		Int("total", total).
		Msg("file converted")

	if man == nil {
		return
	}
	if err := o.recordResult(res, man); err != nil {
		// Manifest trouble only costs a future skip, never the output.
		o.log.Warn().Err(err).Str("input", res.InputPath).Msg("manifest update failed")
	}
}

func (o *Orchestrator) recordResult(res FileResult, man *manifest.Manifest) error {
	rel, err := filepath.Rel(o.cfg.InputRoot, res.InputPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(res.InputPath)
	if err != nil {
		return err
	}
	return man.Record(rel, manifest.Entry{
		Size:       info.Size(),
		ModTime:    info.ModTime().UnixNano(),
		Rows:       res.Rows,
		OutputPath: res.OutputPath,
	})
}

// filterFresh drops inputs whose manifest entry still matches their size and
// mtime, counting them as skipped.
func (o *Orchestrator) filterFresh(files []string, man *manifest.Manifest, summary *Summary) []string {
	kept := files[:0]
	for _, path := range files {
		rel, err := filepath.Rel(o.cfg.InputRoot, path)
		if err != nil {
			kept = append(kept, path)
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			kept = append(kept, path)
			continue
		}
		entry, ok, err := man.Lookup(rel)
		if err != nil || !ok || !entry.Fresh(info.Size(), info.ModTime()) {
			kept = append(kept, path)
			continue
		}

		summary.Skipped++
		metrics.Default().RecordFile(metrics.StatusSkipped, 0)
		o.log.Debug().Str("input", path).Msg("unchanged since last run, skipping")
	}
	return kept
}

// discover walks the input root for container files, sorted for a stable
// submission order.
func (o *Orchestrator) discover() ([]string, error) {
	var files []string
	err := filepath.WalkDir(o.cfg.InputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), InputExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", o.cfg.InputRoot, err)
	}

	sort.Strings(files)
	return files, nil
}
