package extract

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"docpipe/internal/models"
)

const StrategyImageOCR = "image-ocr"

// ImageStrategy runs the recognizer directly on the raster image. No
// fallback branching: there is no text layer to prefer.
type ImageStrategy struct {
	engines Engines
}

func (s *ImageStrategy) Extract(ctx context.Context, path, outputDir string) (models.Outcome, error) {
	out := newOutcome(path, models.CategoryImage)
	out.Strategy = StrategyImageOCR

	rec, err := s.engines.Recognizer()
	if err != nil {
		return out, err
	}

	regions, err := rec.Recognize(ctx, path)
	if err != nil {
		return failed(out, fmt.Errorf("recognize image: %w", err)), nil
	}

	outPath, length, err := writeArtifact(outputDir, path, joinRegions(regions))
	if err != nil {
		return failed(out, err), nil
	}

	log.Infof("image %s: recognized %d regions", filepath.Base(path), len(regions))
	out.Success = true
	out.OutputPath = outPath
	out.TextLength = length
	return out, nil
}
