package extract

import (
	"context"
	"fmt"
	"os"

	"docpipe/internal/config"
	"docpipe/internal/engine"
	"docpipe/internal/models"
)

func defaultTestConfig() *config.Config {
	return &config.Config{
		Extraction: config.ExtractionConfig{
			MaxRetries:            3,
			PDFTextMinChars:       50,
			AudioSizeThresholdMB:  10,
			AudioChunkDurationSec: 30,
		},
	}
}

// stubEngines satisfies Engines with canned collaborators.
type stubEngines struct {
	rec    engine.Recognizer
	recErr error
	tr     engine.Transcriber
	trErr  error
	tk     *engine.Toolkit
	raster *engine.Rasterizer
}

func (s *stubEngines) Recognizer() (engine.Recognizer, error) {
	if s.recErr != nil {
		return nil, s.recErr
	}
	return s.rec, nil
}

func (s *stubEngines) Transcriber() (engine.Transcriber, error) {
	if s.trErr != nil {
		return nil, s.trErr
	}
	return s.tr, nil
}

func (s *stubEngines) Toolkit() *engine.Toolkit       { return s.tk }
func (s *stubEngines) Rasterizer() *engine.Rasterizer { return s.raster }

func engineUnavailable(what string) error {
	return fmt.Errorf("%w: %s", models.ErrEngineUnavailable, what)
}

// stubRecognizer returns fixed regions and counts invocations.
type stubRecognizer struct {
	regions []engine.Region
	err     error
	calls   int
}

func (r *stubRecognizer) Recognize(context.Context, string) ([]engine.Region, error) {
	r.calls++
	return r.regions, r.err
}

func (r *stubRecognizer) Name() string { return "stub" }

// stubTranscriber replays one canned text per call, cycling when exhausted.
type stubTranscriber struct {
	texts []string
	err   error
	calls int
}

func (t *stubTranscriber) Transcribe(context.Context, string) ([]engine.Result, error) {
	defer func() { t.calls++ }()
	if t.err != nil {
		return nil, t.err
	}
	if len(t.texts) == 0 {
		return nil, nil
	}
	text := t.texts[t.calls%len(t.texts)]
	if text == "" {
		return nil, nil
	}
	return []engine.Result{{Text: text}}, nil
}

func (t *stubTranscriber) Name() string { return "stub" }

// mediaRunner fakes ffmpeg/ffprobe/pdftoppm: duration probes answer with a
// fixed value, rendering and cutting commands touch their output file.
type mediaRunner struct {
	duration string
	calls    [][]string
}

func (m *mediaRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	m.calls = append(m.calls, append([]string{name}, args...))
	for _, a := range args {
		if a == "format=duration" {
			return []byte(m.duration + "\n"), nil, nil
		}
		if a == "-png" {
			prefix := args[len(args)-1]
			return nil, nil, os.WriteFile(prefix+"-1.png", []byte("png"), 0o644)
		}
	}
	// ffmpeg-style commands name the output last
	if len(args) > 0 {
		return nil, nil, os.WriteFile(args[len(args)-1], []byte("wav"), 0o644)
	}
	return nil, nil, nil
}

// memPages is an in-memory pageSource.
type memPages struct {
	pages  []string
	errs   map[int]error
	closed bool
}

func (m *memPages) NumPages() int { return len(m.pages) }

func (m *memPages) PageText(page int) (string, error) {
	if err, ok := m.errs[page]; ok {
		return "", err
	}
	return m.pages[page-1], nil
}

func (m *memPages) Close() error {
	m.closed = true
	return nil
}
