package util

import (
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

const utf8BOM = "\ufeff"

// PDF text layers and OCR output carry Windows-1252 leftovers and typographic
// punctuation that render badly in plain markdown.
var charReplacements = map[string]string{
	"‘": "'", "’": "'", "“": "\"", "”": "\"",
	"–": "-", "—": "--", "…": "...", " ": " ",
	"": "'", "": "'", "": "\"", "": "\"",
	"": "-", "": "--",
}

// CleanText normalizes extracted text for the markdown artifact: strips a
// leading BOM, repairs invalid UTF-8 and flattens typographic punctuation.
func CleanText(text, src string) string {
	text = strings.TrimPrefix(text, utf8BOM)

	if !utf8.ValidString(text) {
		log.Warnf("%s: extracted text is not valid UTF-8, replacing invalid sequences", src)
		text = strings.ToValidUTF8(text, string(utf8.RuneError))
	}

	for bad, good := range charReplacements {
		text = strings.ReplaceAll(text, bad, good)
	}
	return text
}
