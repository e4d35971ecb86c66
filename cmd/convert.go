package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docpipe/internal/transcript"
)

var (
	convertFormat string
	convertOutput string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a markdown transcript to srt, vtt, json or txt",
	Long: `Parses timestamped cue lines ([HH:MM:SS], [HH:MM:SS - HH:MM:SS] or
**Speaker** [HH:MM:SS]:) out of a markdown transcript and re-emits them in the
requested subtitle or data format. Transcripts without timestamps are split
into per-sentence cues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]
		content, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}

		segments := transcript.Segments(string(content))
		if len(segments) == 0 {
			return fmt.Errorf("%s contains no transcript text", filepath.Base(inputPath))
		}

		rendered, err := transcript.Render(segments, convertFormat)
		if err != nil {
			return err
		}

		outputPath := convertOutput
		if outputPath == "" {
			ext := filepath.Ext(inputPath)
			outputPath = strings.TrimSuffix(inputPath, ext) + "." + convertFormat
		}
		if err := os.WriteFile(outputPath, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}

		fmt.Printf("%s %s -> %s (%d segments)\n",
			color.GreenString("OK"), filepath.Base(inputPath), outputPath, len(segments))
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "srt", "output format: srt, vtt, json or txt")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file path (default: input with new extension)")
	rootCmd.AddCommand(convertCmd)
}
