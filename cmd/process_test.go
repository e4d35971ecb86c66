package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpipe/internal/app"
	"docpipe/internal/batch"
	"docpipe/internal/config"
	"docpipe/internal/engine"
	"docpipe/internal/extract"
	"docpipe/internal/models"
	"docpipe/internal/retry"
	"docpipe/internal/runlog"
)

// cannedStrategy lets single-file runs complete without external engines.
type cannedStrategy struct {
	fail bool
}

func (s cannedStrategy) Extract(ctx context.Context, path, outputDir string) (models.Outcome, error) {
	out := models.Outcome{FilePath: path, FileType: models.CategoryDocument}
	if s.fail {
		out.Failure = &models.Failure{Kind: models.FailureExtraction, Message: "canned fault"}
		return out, nil
	}
	out.Success = true
	out.Strategy = "document-text"
	out.OutputPath = filepath.Join(outputDir, "canned.md")
	out.TextLength = 6
	return out, nil
}

func newTestApp(strategy extract.Strategy) *app.App {
	cfg := &config.Config{
		Extraction: config.ExtractionConfig{MaxRetries: 1},
	}
	dispatcher := extract.NewDispatcher(cfg, engine.NewPool(cfg, nil))
	dispatcher.Register(models.CategoryDocument, strategy)
	return &app.App{
		Config:     cfg,
		Dispatcher: dispatcher,
		Controller: retry.NewController(cfg, dispatcher),
	}
}

// countingProcessor records how often the batch path actually processes a file.
type countingProcessor struct {
	calls int
}

func (p *countingProcessor) Process(_ context.Context, path, outputDir string) models.Outcome {
	p.calls++
	return models.Outcome{Success: true, FilePath: path}
}

func seedInput(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o644))
	return path
}

func TestRunProcessAppendsToRunLog(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	path := seedInput(t, in, "a.pdf")

	require.NoError(t, runProcess(context.Background(), newTestApp(cannedStrategy{}), path, out))

	store := runlog.Open(out)
	require.Len(t, store.Entries(), 1)
	assert.True(t, store.Entries()[0].Success)

	done := store.Successes()
	_, ok := done["a.pdf"]
	assert.True(t, ok, "single-file success must enter the resume skip-set")
}

func TestRunProcessAppendsFailures(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	path := seedInput(t, in, "a.pdf")

	err := runProcess(context.Background(), newTestApp(cannedStrategy{fail: true}), path, out)
	require.Error(t, err)

	store := runlog.Open(out)
	require.Len(t, store.Entries(), 1, "failed outcomes are logged too")
	assert.False(t, store.Entries()[0].Success)
	assert.Empty(t, store.Successes(), "a failure must not enter the skip-set")
}

// A file converted by `process` is skipped when a batch later covers the same
// input and output directories.
func TestBatchResumesPastSingleFileRun(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	path := seedInput(t, in, "a.pdf")

	appInstance := newTestApp(cannedStrategy{})
	require.NoError(t, runProcess(context.Background(), appInstance, path, out))

	p := &countingProcessor{}
	report, err := batch.NewOrchestrator(appInstance.Config, p).Run(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, 0, p.calls, "batch must not reprocess a file the single-file path finished")
	assert.Equal(t, 1, report.AlreadyDone)
	assert.Equal(t, 0, report.Succeeded)
}
