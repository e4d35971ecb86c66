package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Toolkit wraps the ffmpeg/ffprobe binaries for the media strategies:
// duration probing, audio demuxing and window cutting.
type Toolkit struct {
	ffmpeg  string
	ffprobe string
	runner  Runner
}

func NewToolkit(ffmpeg, ffprobe string, runner Runner) *Toolkit {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	return &Toolkit{ffmpeg: ffmpeg, ffprobe: ffprobe, runner: runner}
}

// Duration returns the media duration in seconds.
func (t *Toolkit) Duration(ctx context.Context, path string) (float64, error) {
	out, errb, err := t.runner.Run(ctx, t.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w (%s)", err, truncate(string(errb), 512))
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: unparseable duration %q", strings.TrimSpace(string(out)))
	}
	return dur, nil
}

// ExtractAudio demuxes the video into a mono 16 kHz WAV suitable for the
// speech engine.
func (t *Toolkit) ExtractAudio(ctx context.Context, videoPath, wavPath string) error {
	_, errb, err := t.runner.Run(ctx, t.ffmpeg,
		"-y", "-i", videoPath,
		"-vn", "-ac", "1", "-ar", "16000",
		wavPath)
	if err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w (%s)", err, truncate(string(errb), 512))
	}
	return nil
}

// CutWindow copies the [start, start+duration) range of an audio file into a
// standalone mono WAV.
func (t *Toolkit) CutWindow(ctx context.Context, audioPath, wavPath string, start, duration float64) error {
	_, errb, err := t.runner.Run(ctx, t.ffmpeg,
		"-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(duration),
		"-i", audioPath,
		"-ac", "1", "-ar", "16000",
		wavPath)
	if err != nil {
		return fmt.Errorf("ffmpeg cut window: %w (%s)", err, truncate(string(errb), 512))
	}
	return nil
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}

// Window is one chunk boundary in seconds.
type Window struct {
	Start    float64
	Duration float64
}

// SplitWindows carves a total duration into consecutive non-overlapping
// windows of chunkSec; the final window may be shorter. A non-positive total
// yields no windows.
func SplitWindows(totalSec, chunkSec float64) []Window {
	if totalSec <= 0 || chunkSec <= 0 {
		return nil
	}
	var windows []Window
	for start := 0.0; start < totalSec; start += chunkSec {
		d := chunkSec
		if start+d > totalSec {
			d = totalSec - start
		}
		windows = append(windows, Window{Start: start, Duration: d})
	}
	return windows
}
