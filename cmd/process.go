package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docpipe/internal/app"
	"docpipe/internal/runlog"
)

var processOutputDir string

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Convert a single file to markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		return runProcess(cmd.Context(), appInstance, args[0], processOutputDir)
	},
}

func runProcess(ctx context.Context, appInstance *app.App, path, outputDir string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	out := appInstance.Controller.Process(ctx, path, outputDir)

	// Single-file runs share the batch run log, so a later batch over the
	// same output directory resumes past this file.
	if err := runlog.Open(outputDir).Append(out); err != nil {
		return err
	}

	if !out.Success {
		fmt.Printf("%s %s: %v (%d attempts)\n",
			color.RedString("FAILED"), filepath.Base(path), out.Failure, out.Attempts)
		return fmt.Errorf("processing %s failed", filepath.Base(path))
	}

	fmt.Printf("%s %s -> %s (%s, %d chars, %.1fs)\n",
		color.GreenString("OK"), filepath.Base(path), out.OutputPath,
		out.Strategy, out.TextLength, out.DurationSec)
	return nil
}

func init() {
	processCmd.Flags().StringVarP(&processOutputDir, "output", "o", "output", "directory for markdown artifacts")
	rootCmd.AddCommand(processCmd)
}
