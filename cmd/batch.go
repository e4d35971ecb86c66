package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"docpipe/internal/models"
)

var batchCmd = &cobra.Command{
	Use:   "batch [inputDir] [outputDir]",
	Short: "Convert every supported file in a directory, resuming prior runs",
	Long: `Enumerates the supported files directly under inputDir, cheapest category
first, and converts each one to markdown under outputDir. Files a previous
run already converted are skipped via the processing log kept in outputDir.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		inputDir, outputDir := "input", "output"
		if len(args) > 0 {
			inputDir = args[0]
		}
		if len(args) > 1 {
			outputDir = args[1]
		}

		appInstance.Orchestrator.OnResult = func(index, total int, out models.Outcome) {
			status := color.GreenString("OK")
			detail := out.Strategy
			if !out.Success {
				status = color.RedString("FAILED")
				detail = out.Failure.Error()
			}
			fmt.Printf("[%d/%d] %s %s (%s)\n", index, total, status, filepath.Base(out.FilePath), detail)
		}

		report, err := appInstance.Orchestrator.Run(cmd.Context(), inputDir, outputDir)
		if err != nil {
			return fmt.Errorf("batch run: %w", err)
		}

		printBatchSummary(report)
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d files failed", report.Failed, report.TotalFiles)
		}
		return nil
	},
}

func printBatchSummary(report *models.BatchReport) {
	fmt.Printf("\nBatch %s finished in %.1fs\n", report.RunID, report.TotalTimeSec)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Total", "Skipped", "Succeeded", "Failed"})
	table.SetBorder(true)
	table.Append([]string{
		strconv.Itoa(report.TotalFiles),
		strconv.Itoa(report.AlreadyDone),
		strconv.Itoa(report.Succeeded),
		strconv.Itoa(report.Failed),
	})
	table.Render()

	if report.Failed > 0 {
		failures := tablewriter.NewWriter(os.Stdout)
		failures.SetHeader([]string{"File", "Kind", "Attempts", "Error"})
		failures.SetRowLine(true)
		for _, out := range report.Results {
			if out.Success || out.Failure == nil {
				continue
			}
			failures.Append([]string{
				filepath.Base(out.FilePath),
				string(out.Failure.Kind),
				strconv.Itoa(out.Attempts),
				out.Failure.Message,
			})
		}
		failures.Render()
	}
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
