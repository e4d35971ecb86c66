// Package retry drives a single file through classification, strategy
// dispatch and a bounded attempt loop. Only extraction failures are worth a
// second attempt; an unsupported file or a missing engine will not improve
// by trying again.
package retry

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"docpipe/internal/classify"
	"docpipe/internal/config"
	"docpipe/internal/extract"
	"docpipe/internal/models"
)

// Dispatcher narrows *extract.Dispatcher to what the controller needs.
type Dispatcher interface {
	Strategy(cat models.Category) (extract.Strategy, bool)
}

// Controller owns the per-file attempt policy.
type Controller struct {
	dispatcher Dispatcher

	maxRetries     int
	retryDelay     time.Duration
	attemptTimeout time.Duration

	// sleep is swapped out by tests to avoid real delays.
	sleep func(time.Duration)
}

func NewController(cfg *config.Config, dispatcher Dispatcher) *Controller {
	return &Controller{
		dispatcher:     dispatcher,
		maxRetries:     cfg.Extraction.MaxRetries,
		retryDelay:     time.Duration(cfg.Extraction.RetryDelayMs) * time.Millisecond,
		attemptTimeout: time.Duration(cfg.Extraction.AttemptTimeoutSec) * time.Second,
		sleep:          time.Sleep,
	}
}

// Process classifies path, runs its strategy up to the attempt limit and
// returns the final outcome. The outcome always carries the attempt count,
// wall-clock duration and content fingerprint of the input.
func (c *Controller) Process(ctx context.Context, path, outputDir string) models.Outcome {
	start := time.Now()
	base := filepath.Base(path)
	cat := classify.Detect(base)

	out := models.Outcome{
		FilePath: path,
		FileType: cat,
		Attempts: 1,
	}

	if !cat.Known() {
		out.Failure = &models.Failure{
			Kind:    models.FailureUnsupported,
			Message: fmt.Sprintf("unsupported file type: %s", filepath.Ext(base)),
		}
		return c.finish(out, start)
	}

	strategy, ok := c.dispatcher.Strategy(cat)
	if !ok {
		out.Failure = &models.Failure{
			Kind:    models.FailureUnsupported,
			Message: fmt.Sprintf("no strategy for category %s", cat),
		}
		return c.finish(out, start)
	}

	maxAttempts := c.maxRetries
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out = c.runAttempt(ctx, strategy, path, outputDir)
		out.Attempts = attempt

		if out.Success {
			break
		}
		if out.Failure != nil && !out.Failure.Retryable() {
			log.Warnf("%s: %s, not retrying", base, out.Failure.Kind)
			break
		}
		if attempt < maxAttempts {
			log.Warnf("%s: attempt %d/%d failed: %v", base, attempt, maxAttempts, out.Failure)
			c.sleep(c.retryDelay)
		}
	}

	return c.finish(out, start)
}

func (c *Controller) runAttempt(ctx context.Context, strategy extract.Strategy, path, outputDir string) models.Outcome {
	if c.attemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.attemptTimeout)
		defer cancel()
	}

	out, err := strategy.Extract(ctx, path, outputDir)
	if err != nil {
		out.Success = false
		out.OutputPath = ""
		out.Failure = models.NewFailure(err)
	}
	return out
}

func (c *Controller) finish(out models.Outcome, start time.Time) models.Outcome {
	out.DurationSec = time.Since(start).Seconds()
	out.Timestamp = time.Now()
	if out.ContentHash == "" {
		out.ContentHash = extract.HashFile(out.FilePath)
	}
	return out
}
