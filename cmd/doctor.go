package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docpipe/internal/engine"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external engines and API configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		cfg := appInstance.Config
		runner := engine.ExecRunner{}

		probes := []struct {
			name   string
			binary string
			args   []string
		}{
			{"tesseract", cfg.OCR.Tesseract, []string{"--version"}},
			{"pdftoppm", cfg.OCR.Pdftoppm, []string{"-v"}},
			{"ffmpeg", cfg.Media.FFmpeg, []string{"-version"}},
			{"ffprobe", cfg.Media.FFprobe, []string{"-version"}},
		}

		missing := 0
		fmt.Println("External binaries:")
		for _, p := range probes {
			// pdftoppm -v exits non-zero but still prints its banner, so
			// any output at all counts as present.
			stdout, stderr, err := runner.Run(cmd.Context(), p.binary, p.args...)
			if err != nil && len(stdout) == 0 && len(stderr) == 0 {
				fmt.Printf("  %s %s (%s): %v\n", color.RedString("MISSING"), p.name, p.binary, err)
				missing++
				continue
			}
			fmt.Printf("  %s %s (%s)\n", color.GreenString("OK"), p.name, p.binary)
		}

		fmt.Println("API engines:")
		reportKey := func(name string, configured bool, hint string) {
			if configured {
				fmt.Printf("  %s %s\n", color.GreenString("OK"), name)
				return
			}
			fmt.Printf("  %s %s (%s)\n", color.YellowString("UNSET"), name, hint)
		}
		reportKey("gemini OCR", cfg.OCR.GoogleAPIKey != "", "set GEMINI_API_KEY or ocr.google_api_key")
		reportKey("whisper transcription",
			cfg.Transcription.OpenaiAPIKey != "" || cfg.Transcription.BaseURL != "",
			"set OPENAI_API_KEY or transcription.base_url")

		if missing > 0 {
			return fmt.Errorf("%d external binaries missing", missing)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
