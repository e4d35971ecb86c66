package classify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docpipe/internal/classify"
	"docpipe/internal/models"
)

func TestDetect(t *testing.T) {
	cases := map[string]models.Category{
		"report.pdf":  models.CategoryDocument,
		"scan.png":    models.CategoryImage,
		"photo.jpg":   models.CategoryImage,
		"photo.jpeg":  models.CategoryImage,
		"fax.tif":     models.CategoryImage,
		"fax.tiff":    models.CategoryImage,
		"talk.mp3":    models.CategoryAudio,
		"talk.wav":    models.CategoryAudio,
		"talk.m4a":    models.CategoryAudio,
		"talk.flac":   models.CategoryAudio,
		"talk.ogg":    models.CategoryAudio,
		"meeting.mp4": models.CategoryVideo,
		"clip.avi":    models.CategoryVideo,
		"clip.mkv":    models.CategoryVideo,
		"clip.mov":    models.CategoryVideo,
		"clip.webm":   models.CategoryVideo,
	}
	for name, want := range cases {
		assert.Equal(t, want, classify.Detect(name), name)
	}
}

func TestDetectCaseInsensitive(t *testing.T) {
	assert.Equal(t, models.CategoryDocument, classify.Detect("REPORT.PDF"))
	assert.Equal(t, models.CategoryVideo, classify.Detect("Meeting.Mp4"))
	assert.Equal(t, models.CategoryAudio, classify.Detect("TALK.WAV"))
}

func TestDetectUnknown(t *testing.T) {
	for _, name := range []string{"notes.xyz", "archive.zip", "noext", "", ".pdf.bak"} {
		assert.Equal(t, models.CategoryUnknown, classify.Detect(name), name)
	}
}

// Every documented extension must map to exactly one known category, in both
// declared and upper-cased form.
func TestSupportedExtensionsTotal(t *testing.T) {
	exts := classify.SupportedExtensions()
	assert.NotEmpty(t, exts)
	for _, ext := range exts {
		cat := classify.Detect("file" + ext)
		assert.True(t, cat.Known(), ext)
		assert.Equal(t, cat, classify.Detect("file"+strings.ToUpper(ext)), ext)
	}
}

func TestCategoryPriorityOrdering(t *testing.T) {
	assert.Less(t, models.CategoryDocument.Priority(), models.CategoryImage.Priority())
	assert.Less(t, models.CategoryImage.Priority(), models.CategoryAudio.Priority())
	assert.Less(t, models.CategoryAudio.Priority(), models.CategoryVideo.Priority())
	assert.Greater(t, models.CategoryUnknown.Priority(), models.CategoryVideo.Priority())
}
