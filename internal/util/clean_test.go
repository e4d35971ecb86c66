package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTextPunctuation(t *testing.T) {
	in := "\ufeff“smart quotes” – and an ellipsis…"
	assert.Equal(t, `"smart quotes" - and an ellipsis...`, CleanText(in, "doc.pdf"))
}

func TestCleanTextInvalidUTF8(t *testing.T) {
	out := CleanText("ok\xff\xfetail", "scan.png")
	assert.True(t, len(out) > 0)
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "tail")
}

func TestCleanTextPassThrough(t *testing.T) {
	assert.Equal(t, "plain ascii", CleanText("plain ascii", "a.md"))
}
