package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
)

// Rasterizer renders single PDF pages to PNG via pdftoppm so a scanned page
// can be handed to the recognizer.
type Rasterizer struct {
	Pdftoppm string
	DPI      int
	Runner   Runner
}

// RenderPage rasterizes one 1-based page into outDir and returns the image path.
func (r *Rasterizer) RenderPage(ctx context.Context, pdfPath string, page int, outDir string) (string, error) {
	bin := r.Pdftoppm
	if bin == "" {
		bin = "pdftoppm"
	}
	dpi := r.DPI
	if dpi <= 0 {
		dpi = 200
	}

	prefix := filepath.Join(outDir, "page")
	p := strconv.Itoa(page)
	_, errb, err := r.Runner.Run(ctx, bin,
		"-f", p, "-l", p,
		"-r", strconv.Itoa(dpi),
		"-png", pdfPath, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// pdftoppm names the file page-<n>.png with zero padding that depends on
	// the document's page count, so glob instead of guessing.
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no image for page %d", page)
	}
	sort.Strings(matches)
	return matches[0], nil
}
