package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"docpipe/internal/engine"
	"docpipe/internal/models"
)

const (
	StrategyAudioDirect  = "audio-direct"
	StrategyAudioChunked = "audio-chunked"
)

// AudioStrategy transcribes an audio file, whole when small enough, in
// fixed-duration windows above the size threshold.
type AudioStrategy struct {
	engines     Engines
	thresholdMB float64
	chunkSec    float64
}

func (s *AudioStrategy) Extract(ctx context.Context, path, outputDir string) (models.Outcome, error) {
	out := newOutcome(path, models.CategoryAudio)

	text, strategy, err := s.transcribeFile(ctx, path)
	if err != nil {
		if isEnvironmentError(err) {
			return out, err
		}
		out.Strategy = strategy
		return failed(out, err), nil
	}
	out.Strategy = strategy

	outPath, length, err := writeArtifact(outputDir, path, text)
	if err != nil {
		return failed(out, err), nil
	}

	out.Success = true
	out.OutputPath = outPath
	out.TextLength = length
	return out, nil
}

// transcribeFile applies the size gate and returns the transcript plus the
// strategy tag of the branch that ran. Shared with the video strategy, which
// feeds it the demuxed waveform.
func (s *AudioStrategy) transcribeFile(ctx context.Context, path string) (string, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("stat audio: %w", err)
	}
	sizeMB := float64(info.Size()) / (1 << 20)

	tr, err := s.engines.Transcriber()
	if err != nil {
		return "", "", err
	}

	if sizeMB > s.thresholdMB {
		log.Infof("audio %s: %.1f MB, transcribing in %g-second windows", filepath.Base(path), sizeMB, s.chunkSec)
		text, err := transcribeChunked(ctx, s.engines.Toolkit(), tr, path, s.chunkSec)
		return text, StrategyAudioChunked, err
	}

	log.Infof("audio %s: %.1f MB, transcribing whole", filepath.Base(path), sizeMB)
	text, err := transcribeDirect(ctx, tr, path)
	return text, StrategyAudioDirect, err
}

// transcribeDirect feeds the whole file to the engine and takes its first
// result record. No results at all is an empty transcript, not a fault.
func transcribeDirect(ctx context.Context, tr engine.Transcriber, path string) (string, error) {
	results, err := tr.Transcribe(ctx, path)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].Text, nil
}

func isEnvironmentError(err error) bool {
	return errors.Is(err, models.ErrEngineUnavailable)
}
