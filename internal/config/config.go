package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Extraction    ExtractionConfig    `mapstructure:"extraction"`
	OCR           OCRConfig           `mapstructure:"ocr"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Media         MediaConfig         `mapstructure:"media"`
	Batch         BatchConfig         `mapstructure:"batch"`
}

type ExtractionConfig struct {
	MaxRetries        int `mapstructure:"max_retries"`
	RetryDelayMs      int `mapstructure:"retry_delay_ms"`
	AttemptTimeoutSec int `mapstructure:"attempt_timeout_sec"` // 0 disables the per-attempt timeout

	// Pages whose embedded text layer is shorter than this are treated
	// as scanned and routed through OCR.
	PDFTextMinChars int `mapstructure:"pdf_text_min_chars"`

	// Media larger than this is transcribed in windows instead of whole.
	AudioSizeThresholdMB  float64 `mapstructure:"audio_size_threshold_mb"`
	AudioChunkDurationSec int     `mapstructure:"audio_chunk_duration_sec"`
}

type OCRConfig struct {
	Provider     string `mapstructure:"provider"` // "tesseract" or "gemini"
	Tesseract    string `mapstructure:"tesseract"`
	Pdftoppm     string `mapstructure:"pdftoppm"`
	Language     string `mapstructure:"language"`
	DPI          int    `mapstructure:"dpi"`
	GoogleAPIKey string `mapstructure:"google_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`
}

type TranscriptionConfig struct {
	OpenaiAPIKey string `mapstructure:"openai_api_key"`
	BaseURL      string `mapstructure:"base_url"` // set to point at a local whisper server
	Model        string `mapstructure:"model"`
}

type MediaConfig struct {
	FFmpeg  string `mapstructure:"ffmpeg"`
	FFprobe string `mapstructure:"ffprobe"`
}

type BatchConfig struct {
	// When set, a prior successful run-log entry only skips a file if its
	// stored content hash still matches. Off by default: skip by name only.
	VerifyFingerprint bool `mapstructure:"verify_fingerprint"`
}

func setDefaults() {
	viper.SetDefault("extraction.max_retries", 3)
	viper.SetDefault("extraction.retry_delay_ms", 1000)
	viper.SetDefault("extraction.attempt_timeout_sec", 0)
	viper.SetDefault("extraction.pdf_text_min_chars", 50)
	viper.SetDefault("extraction.audio_size_threshold_mb", 10)
	viper.SetDefault("extraction.audio_chunk_duration_sec", 30)

	viper.SetDefault("ocr.provider", "tesseract")
	viper.SetDefault("ocr.tesseract", "tesseract")
	viper.SetDefault("ocr.pdftoppm", "pdftoppm")
	viper.SetDefault("ocr.language", "eng")
	viper.SetDefault("ocr.dpi", 200)
	viper.SetDefault("ocr.gemini_model", "gemini-1.5-flash")

	viper.SetDefault("transcription.model", "whisper-1")

	viper.SetDefault("media.ffmpeg", "ffmpeg")
	viper.SetDefault("media.ffprobe", "ffprobe")

	viper.SetDefault("batch.verify_fingerprint", false)
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.BindEnv("transcription.openai_api_key", "OPENAI_API_KEY")
	viper.BindEnv("ocr.google_api_key", "GEMINI_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env vars carry the load.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
