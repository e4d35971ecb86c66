package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	log "github.com/sirupsen/logrus"

	"docpipe/internal/engine"
	"docpipe/internal/models"
)

const (
	StrategyDocumentText = "document-text"
	StrategyDocumentOCR  = "document-ocr"
)

// pageSource abstracts the PDF reader so the page-level fallback decision can
// be tested without real documents. Pages are 1-based.
type pageSource interface {
	NumPages() int
	PageText(page int) (string, error)
	Close() error
}

// DocumentStrategy extracts the embedded text layer page by page, routing
// pages that look scanned (text layer shorter than minChars) through the
// recognizer. The recognizer is requested only when the first such page
// appears, since its setup is the dominant cost on text-only documents.
type DocumentStrategy struct {
	engines  Engines
	minChars int
	open     func(path string) (pageSource, error)
}

func NewDocumentStrategy(engines Engines, minChars int) *DocumentStrategy {
	return &DocumentStrategy{engines: engines, minChars: minChars, open: openPDF}
}

func (s *DocumentStrategy) Extract(ctx context.Context, path, outputDir string) (models.Outcome, error) {
	out := newOutcome(path, models.CategoryDocument)

	src, err := s.open(path)
	if err != nil {
		return failed(out, fmt.Errorf("open document: %w", err)), nil
	}
	defer src.Close()

	var (
		rec      engine.Recognizer
		raster   *engine.Rasterizer
		workDir  string
		ocrPages int
		pages    []string
	)
	total := src.NumPages()

	for page := 1; page <= total; page++ {
		text, perr := src.PageText(page)
		if perr != nil {
			// unreadable text layer; treat like an empty page and let OCR try
			log.Debugf("page %d/%d: text layer unreadable: %v", page, total, perr)
			text = ""
		}

		if utf8.RuneCountInString(strings.TrimSpace(text)) < s.minChars {
			if rec == nil {
				rec, err = s.engines.Recognizer()
				if err != nil {
					return out, err
				}
				raster = s.engines.Rasterizer()
				workDir, err = os.MkdirTemp("", "docpipe-pages-*")
				if err != nil {
					return failed(out, err), nil
				}
				defer os.RemoveAll(workDir)
			}

			ocrText, rerr := s.recognizePage(ctx, rec, raster, path, page, workDir)
			if rerr != nil {
				log.Warnf("page %d/%d: recognition failed: %v", page, total, rerr)
			} else if ocrText != "" {
				text = ocrText
				ocrPages++
				log.Debugf("page %d/%d: recognized %d chars", page, total, utf8.RuneCountInString(text))
			}
		} else {
			log.Debugf("page %d/%d: text layer %d chars", page, total, utf8.RuneCountInString(text))
		}

		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	out.Strategy = StrategyDocumentText
	if ocrPages > 0 {
		out.Strategy = StrategyDocumentOCR
	}

	outPath, length, err := writeArtifact(outputDir, path, strings.Join(pages, "\n\n"))
	if err != nil {
		return failed(out, err), nil
	}

	log.Infof("document %s: %s (ocr %d/%d pages)", filepath.Base(path), out.Strategy, ocrPages, total)
	out.Success = true
	out.OutputPath = outPath
	out.TextLength = length
	return out, nil
}

// recognizePage rasterizes one page into its own scratch dir and joins the
// recognized line texts.
func (s *DocumentStrategy) recognizePage(ctx context.Context, rec engine.Recognizer, raster *engine.Rasterizer, pdfPath string, page int, workDir string) (string, error) {
	pageDir := filepath.Join(workDir, fmt.Sprintf("p%d", page))
	if err := os.MkdirAll(pageDir, 0o755); err != nil {
		return "", err
	}

	img, err := raster.RenderPage(ctx, pdfPath, page, pageDir)
	if err != nil {
		return "", err
	}

	regions, err := rec.Recognize(ctx, img)
	if err != nil {
		return "", err
	}
	return joinRegions(regions), nil
}

// joinRegions renders recognized regions one per line, in reading order when
// the recognizer reported geometry.
func joinRegions(regions []engine.Region) string {
	lines := make([]string, 0, len(regions))
	for _, r := range engine.ReadingOrder(regions) {
		if r.Text != "" {
			lines = append(lines, r.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// openPDF adapts ledongthuc/pdf to the pageSource seam.
func openPDF(path string) (pageSource, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &pdfSource{f: f, r: r}, nil
}

type pdfSource struct {
	f *os.File
	r *pdf.Reader
}

func (p *pdfSource) NumPages() int { return p.r.NumPage() }

func (p *pdfSource) PageText(page int) (string, error) {
	pg := p.r.Page(page)
	if pg.V.IsNull() {
		return "", nil
	}
	return pg.GetPlainText(nil)
}

func (p *pdfSource) Close() error { return p.f.Close() }
