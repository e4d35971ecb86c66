package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is the semantic kind of an input file, derived from its extension.
type Category string

const (
	CategoryDocument Category = "document"
	CategoryImage    Category = "image"
	CategoryAudio    Category = "audio"
	CategoryVideo    Category = "video"
	CategoryUnknown  Category = "unknown"
)

// Known reports whether the category has an extraction strategy.
func (c Category) Known() bool {
	return c != CategoryUnknown && c != ""
}

// Priority returns the batch processing rank. Documents go first because they
// are cheap relative to media, then images, audio and video. Lower runs first.
func (c Category) Priority() int {
	switch c {
	case CategoryDocument:
		return 1
	case CategoryImage:
		return 2
	case CategoryAudio:
		return 3
	case CategoryVideo:
		return 4
	default:
		return 99
	}
}

// Outcome is the immutable result of processing one file in one pass.
// JSON field names match the persisted run-log schema.
type Outcome struct {
	Success     bool      `json:"success"`
	FilePath    string    `json:"file_path"`
	FileType    Category  `json:"file_type"`
	Strategy    string    `json:"strategy,omitempty"`
	OutputPath  string    `json:"output_path,omitempty"`
	TextLength  int       `json:"text_length"`
	Failure     *Failure  `json:"error,omitempty"`
	Attempts    int       `json:"attempts"`
	DurationSec float64   `json:"duration_sec"`
	Timestamp   time.Time `json:"timestamp"`
	ContentHash string    `json:"content_hash,omitempty"`
}

// BatchReport summarizes a single orchestrator invocation. Results holds only
// the outcomes produced in this run; files skipped as already done are counted
// in AlreadyDone but carry no new outcome.
type BatchReport struct {
	RunID        uuid.UUID `json:"run_id"`
	Timestamp    time.Time `json:"timestamp"`
	InputDir     string    `json:"input_dir"`
	OutputDir    string    `json:"output_dir"`
	TotalFiles   int       `json:"total_files"`
	AlreadyDone  int       `json:"already_processed"`
	Succeeded    int       `json:"success"`
	Failed       int       `json:"failed"`
	TotalTimeSec float64   `json:"total_time_sec"`
	Results      []Outcome `json:"results"`
}
