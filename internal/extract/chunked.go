package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"docpipe/internal/engine"
)

// transcribeChunked splits the audio into consecutive windows of chunkSec
// (the last one may be shorter), materializes each window as a standalone WAV
// in one scratch dir, transcribes it, and concatenates the per-window texts in
// temporal order with no separator. The transcriber instance is obtained once
// by the caller and reused across all windows, and the scratch dir is removed
// on every exit path.
func transcribeChunked(ctx context.Context, tk *engine.Toolkit, tr engine.Transcriber, path string, chunkSec float64) (string, error) {
	total, err := tk.Duration(ctx, path)
	if err != nil {
		return "", err
	}

	windows := engine.SplitWindows(total, chunkSec)
	if len(windows) == 0 {
		return "", fmt.Errorf("media reports no duration (%gs)", total)
	}
	log.Infof("duration %.1fs, %d windows", total, len(windows))

	workDir, err := os.MkdirTemp("", "docpipe-chunks-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(workDir)

	var transcript string
	for i, w := range windows {
		chunkPath := filepath.Join(workDir, fmt.Sprintf("chunk_%d.wav", i))
		if err := tk.CutWindow(ctx, path, chunkPath, w.Start, w.Duration); err != nil {
			return "", fmt.Errorf("window %d/%d: %w", i+1, len(windows), err)
		}

		results, err := tr.Transcribe(ctx, chunkPath)
		if err != nil {
			return "", fmt.Errorf("window %d/%d: %w", i+1, len(windows), err)
		}
		if len(results) == 0 {
			log.Debugf("window %d/%d: no result", i+1, len(windows))
			continue
		}
		transcript += results[0].Text
		log.Debugf("window %d/%d: %d chars", i+1, len(windows), len(results[0].Text))
	}
	return transcript, nil
}
