package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docpipe/internal/engine"
	"docpipe/internal/models"
)

func TestImageRecognize(t *testing.T) {
	rec := &stubRecognizer{regions: []engine.Region{
		{Text: "INVOICE 2024-117"},
		{Text: "Total due: 42.00"},
	}}
	s := &ImageStrategy{engines: &stubEngines{rec: rec}}

	outDir := t.TempDir()
	out, err := s.Extract(context.Background(), "/scans/receipt.png", outDir)
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, StrategyImageOCR, out.Strategy)
	assert.Equal(t, filepath.Join(outDir, "receipt.md"), out.OutputPath)

	data, err := os.ReadFile(out.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "# receipt.png\n\nINVOICE 2024-117\nTotal due: 42.00", string(data))
}

func TestImageEmptyPage(t *testing.T) {
	s := &ImageStrategy{engines: &stubEngines{rec: &stubRecognizer{}}}

	out, err := s.Extract(context.Background(), "/scans/blank.jpg", t.TempDir())
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 0, out.TextLength)
}

func TestImageRecognizeFailure(t *testing.T) {
	rec := &stubRecognizer{err: assert.AnError}
	s := &ImageStrategy{engines: &stubEngines{rec: rec}}

	out, err := s.Extract(context.Background(), "/scans/bad.tif", t.TempDir())
	require.NoError(t, err)

	assert.False(t, out.Success)
	require.NotNil(t, out.Failure)
	assert.Equal(t, models.FailureExtraction, out.Failure.Kind)
}

func TestImageMissingEngine(t *testing.T) {
	s := &ImageStrategy{engines: &stubEngines{recErr: engineUnavailable("no tesseract")}}

	_, err := s.Extract(context.Background(), "/scans/receipt.png", t.TempDir())
	assert.ErrorIs(t, err, models.ErrEngineUnavailable)
}

func TestDispatcherRoutes(t *testing.T) {
	d := NewDispatcher(defaultTestConfig(), &stubEngines{})

	for _, cat := range []models.Category{
		models.CategoryDocument, models.CategoryImage,
		models.CategoryAudio, models.CategoryVideo,
	} {
		_, ok := d.Strategy(cat)
		assert.True(t, ok, "category %s", cat)
	}

	_, ok := d.Strategy(models.CategoryUnknown)
	assert.False(t, ok)
}
