// Package classify maps file names to extraction categories.
package classify

import (
	"path/filepath"
	"strings"

	"docpipe/internal/models"
)

// extensionMap is the closed set of supported extensions. Lookup keys are
// lower-case including the leading dot.
var extensionMap = map[string]models.Category{
	".pdf": models.CategoryDocument,

	".png":  models.CategoryImage,
	".jpg":  models.CategoryImage,
	".jpeg": models.CategoryImage,
	".tif":  models.CategoryImage,
	".tiff": models.CategoryImage,

	".mp3":  models.CategoryAudio,
	".wav":  models.CategoryAudio,
	".m4a":  models.CategoryAudio,
	".flac": models.CategoryAudio,
	".ogg":  models.CategoryAudio,

	".mp4":  models.CategoryVideo,
	".avi":  models.CategoryVideo,
	".mkv":  models.CategoryVideo,
	".mov":  models.CategoryVideo,
	".webm": models.CategoryVideo,
}

// Detect returns the category for a file name. It is a pure function of the
// extension, case-insensitive; unrecognized extensions yield CategoryUnknown.
func Detect(name string) models.Category {
	ext := strings.ToLower(filepath.Ext(name))
	if cat, ok := extensionMap[ext]; ok {
		return cat
	}
	return models.CategoryUnknown
}

// SupportedExtensions returns the documented extension set, lower-case with
// leading dots, in no particular order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionMap))
	for ext := range extensionMap {
		exts = append(exts, ext)
	}
	return exts
}
