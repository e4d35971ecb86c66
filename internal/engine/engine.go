// Package engine holds the external model collaborators: optical text
// recognition, speech transcription, and the ffmpeg media toolkit. Every
// implementation is either a subprocess behind a Runner or an API client, so
// the extraction strategies stay free of model-specific code.
package engine

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"docpipe/internal/config"
	"docpipe/internal/models"
)

// Region is one recognized text block in reading order. Geometry is zero for
// recognizers that do not report layout.
type Region struct {
	Text   string
	Left   int
	Top    int
	Width  int
	Height int
}

// Recognizer turns a raster image into ordered text regions. An image with no
// detectable text yields an empty slice, not an error.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath string) ([]Region, error)
	Name() string
}

// Result is one transcription result record. Callers take the first.
type Result struct {
	Text string
}

// Transcriber turns an audio file into ordered result records.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]Result, error)
	Name() string
}

// Pool owns one warm engine instance per concern for the process lifetime.
// Engines are constructed lazily on first request and reused across every file
// of a batch, so the expensive setup cost is paid at most once per run.
type Pool struct {
	cfg    *config.Config
	runner Runner

	mu          sync.Mutex
	recognizer  Recognizer
	transcriber Transcriber
	toolkit     *Toolkit
}

func NewPool(cfg *config.Config, runner Runner) *Pool {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Pool{cfg: cfg, runner: runner}
}

// Recognizer returns the warm OCR engine, constructing it on first use.
// Construction failure is an environment fault, reported as ErrEngineUnavailable.
func (p *Pool) Recognizer() (Recognizer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.recognizer != nil {
		return p.recognizer, nil
	}

	var (
		rec Recognizer
		err error
	)
	switch strings.ToLower(p.cfg.OCR.Provider) {
	case "", "tesseract":
		rec, err = NewTesseract(p.cfg.OCR.Tesseract, p.cfg.OCR.Language, p.runner)
	case "gemini":
		rec, err = NewGemini(context.Background(), p.cfg.OCR.GoogleAPIKey, p.cfg.OCR.GeminiModel)
	default:
		err = fmt.Errorf("unknown ocr provider %q", p.cfg.OCR.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: recognizer: %v", models.ErrEngineUnavailable, err)
	}
	p.recognizer = rec
	return rec, nil
}

// Transcriber returns the warm speech engine, constructing it on first use.
func (p *Pool) Transcriber() (Transcriber, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.transcriber != nil {
		return p.transcriber, nil
	}

	tr, err := NewWhisper(p.cfg.Transcription.OpenaiAPIKey, p.cfg.Transcription.BaseURL, p.cfg.Transcription.Model)
	if err != nil {
		return nil, fmt.Errorf("%w: transcriber: %v", models.ErrEngineUnavailable, err)
	}
	p.transcriber = tr
	return tr, nil
}

// Toolkit returns the ffmpeg/ffprobe media helper. It never fails to build;
// a missing binary surfaces on first use.
func (p *Pool) Toolkit() *Toolkit {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.toolkit == nil {
		p.toolkit = NewToolkit(p.cfg.Media.FFmpeg, p.cfg.Media.FFprobe, p.runner)
	}
	return p.toolkit
}

// Rasterizer returns the PDF page rasterizer used by the document strategy.
func (p *Pool) Rasterizer() *Rasterizer {
	return &Rasterizer{Pdftoppm: p.cfg.OCR.Pdftoppm, DPI: p.cfg.OCR.DPI, Runner: p.runner}
}

// lookupBinary resolves a configured binary name or path, failing early when
// the executable is absent so retries are not wasted on it.
func lookupBinary(bin string) error {
	if strings.ContainsRune(bin, os.PathSeparator) {
		if _, err := os.Stat(bin); err != nil {
			return fmt.Errorf("binary %q not found: %w", bin, err)
		}
		return nil
	}
	if _, err := execLookPath(bin); err != nil {
		return fmt.Errorf("binary %q not found in PATH: %w", bin, err)
	}
	return nil
}
