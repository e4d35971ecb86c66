package models

import (
	"errors"
	"fmt"
)

// ErrEngineUnavailable marks an environment fault: a required external engine
// is missing or misconfigured. Retrying cannot fix it, so strategies return it
// as a real error instead of folding it into the outcome.
var ErrEngineUnavailable = errors.New("engine unavailable")

// FailureKind classifies why an extraction attempt did not succeed.
type FailureKind string

const (
	// FailureUnsupported: the file's extension maps to no strategy. Never retried.
	FailureUnsupported FailureKind = "unsupported-type"
	// FailureExtraction: a data-dependent fault during one attempt. Retryable.
	FailureExtraction FailureKind = "extraction"
	// FailureMissingEngine: a required external engine is absent. Never retried.
	FailureMissingEngine FailureKind = "missing-engine"
)

// Failure is the structured error descriptor carried by a failed Outcome.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// Retryable reports whether another attempt could plausibly succeed.
func (f *Failure) Retryable() bool {
	return f.Kind == FailureExtraction
}

// NewFailure builds an extraction failure from an arbitrary error.
func NewFailure(err error) *Failure {
	if errors.Is(err, ErrEngineUnavailable) {
		return &Failure{Kind: FailureMissingEngine, Message: err.Error()}
	}
	return &Failure{Kind: FailureExtraction, Message: err.Error()}
}
