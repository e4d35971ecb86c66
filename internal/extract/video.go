package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"docpipe/internal/models"
)

const (
	StrategyVideoDirect  = "video-direct"
	StrategyVideoChunked = "video-chunked"
)

// VideoStrategy demuxes the video into a temporary waveform and runs it
// through the audio strategy's size-gated logic. The intermediate WAV is
// removed on every exit path.
type VideoStrategy struct {
	engines Engines
	audio   *AudioStrategy
}

func (s *VideoStrategy) Extract(ctx context.Context, path, outputDir string) (models.Outcome, error) {
	out := newOutcome(path, models.CategoryVideo)

	// Fail fast on a missing speech engine before paying for the demux.
	if _, err := s.engines.Transcriber(); err != nil {
		return out, err
	}

	wav, err := os.CreateTemp("", "docpipe-*.wav")
	if err != nil {
		return failed(out, err), nil
	}
	wavPath := wav.Name()
	wav.Close()
	defer os.Remove(wavPath)

	log.Infof("video %s: extracting audio track", filepath.Base(path))
	if err := s.engines.Toolkit().ExtractAudio(ctx, path, wavPath); err != nil {
		return failed(out, fmt.Errorf("demux video: %w", err)), nil
	}

	text, audioStrategy, err := s.audio.transcribeFile(ctx, wavPath)
	if err != nil {
		if isEnvironmentError(err) {
			return out, err
		}
		out.Strategy = videoTag(audioStrategy)
		return failed(out, err), nil
	}
	out.Strategy = videoTag(audioStrategy)

	outPath, length, err := writeArtifact(outputDir, path, text)
	if err != nil {
		return failed(out, err), nil
	}

	out.Success = true
	out.OutputPath = outPath
	out.TextLength = length
	return out, nil
}

func videoTag(audioStrategy string) string {
	return strings.Replace(audioStrategy, "audio-", "video-", 1)
}
