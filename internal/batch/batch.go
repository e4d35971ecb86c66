// Package batch enumerates an input directory, orders the work and drives
// each file through the retry controller, resuming past the files an earlier
// run already converted.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"docpipe/internal/classify"
	"docpipe/internal/config"
	"docpipe/internal/extract"
	"docpipe/internal/models"
	"docpipe/internal/runlog"
)

// Processor converts a single file end to end. Satisfied by *retry.Controller.
type Processor interface {
	Process(ctx context.Context, path, outputDir string) models.Outcome
}

// Orchestrator runs one resumable batch over a directory.
type Orchestrator struct {
	processor         Processor
	verifyFingerprint bool

	// OnResult, when set, observes each per-file outcome as it lands. The
	// index counts only files actually processed this run.
	OnResult func(index, total int, out models.Outcome)
}

func NewOrchestrator(cfg *config.Config, processor Processor) *Orchestrator {
	return &Orchestrator{
		processor:         processor,
		verifyFingerprint: cfg.Batch.VerifyFingerprint,
	}
}

// item is one unit of pending work, carrying the sort keys.
type item struct {
	path string
	cat  models.Category
	size int64
}

// Run processes every supported file directly under inputDir, writing
// artifacts and the run log to outputDir, and returns the batch report.
// Files the run log already records as successful are skipped.
func (o *Orchestrator) Run(ctx context.Context, inputDir, outputDir string) (*models.BatchReport, error) {
	start := time.Now()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	items, err := discover(inputDir)
	if err != nil {
		return nil, err
	}

	store := runlog.Open(outputDir)
	done := store.Successes()

	report := &models.BatchReport{
		RunID:      uuid.New(),
		Timestamp:  start,
		InputDir:   inputDir,
		OutputDir:  outputDir,
		TotalFiles: len(items),
	}

	pending := make([]item, 0, len(items))
	for _, it := range items {
		if o.alreadyDone(it.path, done) {
			log.Infof("skipping %s: already processed", filepath.Base(it.path))
			report.AlreadyDone++
			continue
		}
		pending = append(pending, it)
	}

	for i, it := range pending {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := o.processor.Process(ctx, it.path, outputDir)
		if out.Success {
			report.Succeeded++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, out)

		if err := store.Append(out); err != nil {
			return nil, err
		}
		if o.OnResult != nil {
			o.OnResult(i+1, len(pending), out)
		}
	}

	report.TotalTimeSec = time.Since(start).Seconds()
	if _, err := runlog.WriteReport(outputDir, *report); err != nil {
		return nil, err
	}
	return report, nil
}

// alreadyDone reports whether a prior successful entry covers this file. With
// fingerprint verification on, a file whose content changed since that entry
// is processed again.
func (o *Orchestrator) alreadyDone(path string, done map[string]models.Outcome) bool {
	prior, ok := done[filepath.Base(path)]
	if !ok {
		return false
	}
	if !o.verifyFingerprint || prior.ContentHash == "" {
		return true
	}
	return extract.HashFile(path) == prior.ContentHash
}

// discover lists the supported files directly under dir, cheapest categories
// first and smaller files before larger ones within a category.
func discover(dir string) ([]item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var items []item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		cat := classify.Detect(entry.Name())
		if !cat.Known() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Warnf("stat %s: %v", entry.Name(), err)
			continue
		}
		items = append(items, item{
			path: filepath.Join(dir, entry.Name()),
			cat:  cat,
			size: info.Size(),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].cat.Priority() != items[j].cat.Priority() {
			return items[i].cat.Priority() < items[j].cat.Priority()
		}
		return items[i].size < items[j].size
	})
	return items, nil
}
