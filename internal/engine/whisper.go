package engine

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// WhisperTranscriber speaks the OpenAI audio transcription API. base_url may
// point at a local whisper-compatible server, in which case no real key is
// needed.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

func NewWhisper(apiKey, baseURL, model string) (*WhisperTranscriber, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" && baseURL == "" {
		return nil, fmt.Errorf("transcription api key not configured and no local base_url set")
	}
	if apiKey == "" {
		apiKey = "local" // local servers ignore the key but the client requires one
	}
	if model == "" {
		model = openai.Whisper1
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	log.Infof("Whisper transcriber initialized (model %s)", model)
	return &WhisperTranscriber{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

func (w *WhisperTranscriber) Name() string { return "whisper" }

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) ([]Result, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: audioPath,
	})
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	if resp.Text == "" {
		return nil, nil
	}
	return []Result{{Text: resp.Text}}, nil
}
