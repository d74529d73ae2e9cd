package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abyteon/vhr-parser/pkg/writer"
)

func newTestOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	return NewOrchestrator(cfg, valueDecoder{}, writer.NewParquetWriter(), zerolog.Nop())
}

func TestOrchestrator_EmptyDirectory(t *testing.T) {
	o := newTestOrchestrator(OrchestratorConfig{
		InputRoot:  t.TempDir(),
		OutputRoot: t.TempDir(),
		Workers:    2,
	})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 0, summary.Failed)
	assert.Empty(t, summary.Failures)
	assert.NotEmpty(t, summary.RunID)
}

func TestOrchestrator_MissingInputRoot(t *testing.T) {
	o := newTestOrchestrator(OrchestratorConfig{
		InputRoot:  filepath.Join(t.TempDir(), "nope"),
		OutputRoot: t.TempDir(),
	})

	summary, err := o.Run(context.Background())
	assert.Error(t, err)
	assert.Nil(t, summary)
}

func TestOrchestrator_ManyFilesFourWorkers(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	for i := 0; i < 100; i++ {
		path := filepath.Join(inputRoot, fmt.Sprintf("dir%02d", i%7), fmt.Sprintf("file%03d.bin", i))
		writeContainer(t, path, testSourceID, []byte{byte(i)})
	}

	o := newTestOrchestrator(OrchestratorConfig{
		InputRoot:  inputRoot,
		OutputRoot: outputRoot,
		Workers:    4,
	})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, summary.Processed)
	assert.Equal(t, 100, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)

	// The output tree mirrors the input tree.
	for i := 0; i < 100; i++ {
		assert.FileExists(t, filepath.Join(outputRoot, fmt.Sprintf("dir%02d", i%7), fmt.Sprintf("file%03d.parquet", i)))
	}
}

func TestOrchestrator_FaultIsolation(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	writeContainer(t, filepath.Join(inputRoot, "good1.bin"), testSourceID, []byte{0x01})
	writeCorruptContainer(t, filepath.Join(inputRoot, "bad.bin"), nil)
	writeContainer(t, filepath.Join(inputRoot, "good2.bin"), testSourceID, []byte{0x02})

	o := newTestOrchestrator(OrchestratorConfig{
		InputRoot:  inputRoot,
		OutputRoot: outputRoot,
		Workers:    2,
	})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)

	require.Len(t, summary.Failures, 1)
	assert.Equal(t, filepath.Join(inputRoot, "bad.bin"), summary.Failures[0].InputPath)
	assert.Error(t, summary.Failures[0].Err)

	assert.FileExists(t, filepath.Join(outputRoot, "good1.parquet"))
	assert.FileExists(t, filepath.Join(outputRoot, "good2.parquet"))
}

func TestOrchestrator_NonBinFilesIgnored(t *testing.T) {
	inputRoot := t.TempDir()

	writeContainer(t, filepath.Join(inputRoot, "a.bin"), testSourceID, []byte{0x01})
	require.NoError(t, os.WriteFile(filepath.Join(inputRoot, "notes.txt"), []byte("skip me"), 0600))

	o := newTestOrchestrator(OrchestratorConfig{
		InputRoot:  inputRoot,
		OutputRoot: t.TempDir(),
		Workers:    1,
	})

	summary, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
}

func TestOrchestrator_Deterministic(t *testing.T) {
	inputRoot := t.TempDir()

	for i := 0; i < 10; i++ {
		writeContainer(t, filepath.Join(inputRoot, fmt.Sprintf("f%d.bin", i)), testSourceID,
			[]byte{byte(i), 0x01}, []byte{byte(i), 0x02})
	}

	runOnce := func() string {
		outputRoot := t.TempDir()
		o := newTestOrchestrator(OrchestratorConfig{
			InputRoot:  inputRoot,
			OutputRoot: outputRoot,
			Workers:    4,
		})
		summary, err := o.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, 10, summary.Succeeded)
		return outputRoot
	}

	first := runOnce()
	second := runOnce()

	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("f%d.parquet", i)
		a := readRows(t, filepath.Join(first, name))
		b := readRows(t, filepath.Join(second, name))
		assert.Equal(t, a, b, "file %s", name)
	}
}

func TestOrchestrator_ResumeSkipsUnchanged(t *testing.T) {
	inputRoot := t.TempDir()
	outputRoot := t.TempDir()

	writeContainer(t, filepath.Join(inputRoot, "a.bin"), testSourceID, []byte{0x01})
	writeContainer(t, filepath.Join(inputRoot, "b.bin"), testSourceID, []byte{0x02})

	cfg := OrchestratorConfig{
		InputRoot:  inputRoot,
		OutputRoot: outputRoot,
		Workers:    2,
		Resume:     true,
	}

	summary, err := newTestOrchestrator(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Skipped)

	// Unchanged inputs are skipped on the second run.
	summary, err = newTestOrchestrator(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 2, summary.Skipped)

	// A touched file is reprocessed.
	writeContainer(t, filepath.Join(inputRoot, "a.bin"), testSourceID, []byte{0x03}, []byte{0x04})

	summary, err = newTestOrchestrator(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Skipped)
}

func TestOrchestrator_CancelledContext(t *testing.T) {
	inputRoot := t.TempDir()

	for i := 0; i < 10; i++ {
		writeContainer(t, filepath.Join(inputRoot, fmt.Sprintf("f%d.bin", i)), testSourceID, []byte{byte(i)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newTestOrchestrator(OrchestratorConfig{
		InputRoot:  inputRoot,
		OutputRoot: t.TempDir(),
		Workers:    2,
	})

	summary, err := o.Run(ctx)
	require.NoError(t, err)
	// Submission stops early; whatever was in flight still completed.
	assert.LessOrEqual(t, summary.Processed, 10)
	assert.Equal(t, summary.Processed, summary.Succeeded)
}
