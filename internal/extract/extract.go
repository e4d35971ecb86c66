// Package extract holds the per-category extraction strategies. Every
// strategy fulfils the same contract: data-dependent faults are folded into
// the returned Outcome, and only unrecoverable environment faults (a missing
// external engine) come back as a Go error.
package extract

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"docpipe/internal/config"
	"docpipe/internal/engine"
	"docpipe/internal/models"
	"docpipe/internal/util"
)

// Strategy is the common extraction contract, polymorphic over category.
type Strategy interface {
	Extract(ctx context.Context, path, outputDir string) (models.Outcome, error)
}

// Engines is the warm engine pool as seen by strategies. Satisfied by
// *engine.Pool; tests provide stubs.
type Engines interface {
	Recognizer() (engine.Recognizer, error)
	Transcriber() (engine.Transcriber, error)
	Toolkit() *engine.Toolkit
	Rasterizer() *engine.Rasterizer
}

// Dispatcher routes a category to its strategy.
type Dispatcher struct {
	strategies map[models.Category]Strategy
}

func NewDispatcher(cfg *config.Config, engines Engines) *Dispatcher {
	audio := &AudioStrategy{
		engines:     engines,
		thresholdMB: cfg.Extraction.AudioSizeThresholdMB,
		chunkSec:    float64(cfg.Extraction.AudioChunkDurationSec),
	}
	return &Dispatcher{strategies: map[models.Category]Strategy{
		models.CategoryDocument: NewDocumentStrategy(engines, cfg.Extraction.PDFTextMinChars),
		models.CategoryImage:    &ImageStrategy{engines: engines},
		models.CategoryAudio:    audio,
		models.CategoryVideo:    &VideoStrategy{engines: engines, audio: audio},
	}}
}

// Strategy returns the strategy for a category, or false for unknown ones.
func (d *Dispatcher) Strategy(cat models.Category) (Strategy, bool) {
	s, ok := d.strategies[cat]
	return s, ok
}

// Register overrides the strategy for a category. Used by tests.
func (d *Dispatcher) Register(cat models.Category, s Strategy) {
	d.strategies[cat] = s
}

// newOutcome seeds an attempt result for a file.
func newOutcome(path string, cat models.Category) models.Outcome {
	return models.Outcome{
		FilePath:  path,
		FileType:  cat,
		Timestamp: time.Now(),
	}
}

// failed marks an outcome with a data-dependent extraction failure.
func failed(out models.Outcome, err error) models.Outcome {
	out.Success = false
	out.OutputPath = ""
	out.Failure = models.NewFailure(err)
	return out
}

// writeArtifact persists the extracted text as <stem>.md in outputDir with
// the source base name as a title line, and returns the artifact path and the
// extracted length in runes.
func writeArtifact(outputDir, srcPath, text string) (string, int, error) {
	base := filepath.Base(srcPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	outPath := filepath.Join(outputDir, stem+".md")

	text = util.CleanText(text, base)
	content := fmt.Sprintf("# %s\n\n%s", base, text)
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return "", 0, fmt.Errorf("write artifact: %w", err)
	}
	return outPath, utf8.RuneCountInString(text), nil
}

// HashFile returns a short sha256 content fingerprint, empty on error.
func HashFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
