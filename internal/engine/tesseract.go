package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// TesseractRecognizer shells out to the tesseract binary and parses its TSV
// output into line-level regions with bounding boxes.
type TesseractRecognizer struct {
	binary   string
	language string
	runner   Runner
}

func NewTesseract(binary, language string, runner Runner) (*TesseractRecognizer, error) {
	if binary == "" {
		binary = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	if err := lookupBinary(binary); err != nil {
		return nil, err
	}
	return &TesseractRecognizer{binary: binary, language: language, runner: runner}, nil
}

func (t *TesseractRecognizer) Name() string { return "tesseract" }

// Recognize runs `tesseract <img> stdout -l <lang> tsv` and groups word rows
// into lines. An image with no text yields an empty slice.
func (t *TesseractRecognizer) Recognize(ctx context.Context, imagePath string) ([]Region, error) {
	out, errb, err := t.runner.Run(ctx, t.binary, imagePath, "stdout", "-l", t.language, "tsv")
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return parseTSV(string(out)), nil
}

type tsvWord struct {
	block, par, line         int
	left, top, width, height int
	text                     string
}

// parseTSV turns tesseract TSV output into line regions. Word boxes within a
// line are unioned; word texts are joined with single spaces in emitted order.
func parseTSV(tsv string) []Region {
	var regions []Region
	var cur *Region
	var curKey [3]int

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.Text) != "" {
			cur.Text = strings.TrimSpace(cur.Text)
			regions = append(regions, *cur)
		}
		cur = nil
	}

	for i, ln := range strings.Split(tsv, "\n") {
		if i == 0 || strings.TrimSpace(ln) == "" {
			continue // header
		}
		w, ok := parseTSVRow(ln)
		if !ok {
			continue
		}
		key := [3]int{w.block, w.par, w.line}
		if cur == nil || key != curKey {
			flush()
			cur = &Region{Left: w.left, Top: w.top, Width: w.width, Height: w.height}
			curKey = key
		} else {
			// union of the word box with the running line box
			right := max(cur.Left+cur.Width, w.left+w.width)
			bottom := max(cur.Top+cur.Height, w.top+w.height)
			cur.Left = min(cur.Left, w.left)
			cur.Top = min(cur.Top, w.top)
			cur.Width = right - cur.Left
			cur.Height = bottom - cur.Top
		}
		if w.text != "" {
			if cur.Text != "" {
				cur.Text += " "
			}
			cur.Text += w.text
		}
	}
	flush()
	return regions
}

// parseTSVRow accepts only word-level rows (level 5).
func parseTSVRow(ln string) (tsvWord, bool) {
	cols := strings.Split(ln, "\t")
	if len(cols) < 12 {
		return tsvWord{}, false
	}
	level, err := strconv.Atoi(cols[0])
	if err != nil || level != 5 {
		return tsvWord{}, false
	}
	atoi := func(s string) int {
		v, _ := strconv.Atoi(s)
		return v
	}
	return tsvWord{
		block: atoi(cols[2]), par: atoi(cols[3]), line: atoi(cols[4]),
		left: atoi(cols[6]), top: atoi(cols[7]), width: atoi(cols[8]), height: atoi(cols[9]),
		text: strings.TrimSpace(cols[11]),
	}, true
}
