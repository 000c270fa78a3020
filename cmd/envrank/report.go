// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"envrank/internal/issue"
	"envrank/internal/report"
)

var (
	reportResultsDir string
	reportOut        string
	reportPretty     bool

	reportCmd = &cobra.Command{
		Use:   "report",
		Short: "Aggregate trial records into a comparison report",
		Long: `Read every trial record under the results directory and render a
markdown report: a summary table (one row per version), a version-by-
mechanism support matrix, and a detail section embedding each record.

The report is purely presentational; it never re-runs or re-ranks
anything.`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}
)

func init() {
	reportCmd.Flags().StringVar(&reportResultsDir, "results", "", "results directory (default from config)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "write the markdown report to a file instead of stdout")
	reportCmd.Flags().BoolVar(&reportPretty, "pretty", false, "render the report for the terminal")
}

func runReport(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	dir := reportResultsDir
	if dir == "" {
		dir = cfg.ResultsDir
	}

	agg := &report.Aggregator{ResultsDir: dir, Logger: logger}
	records, err := agg.Load()
	if err != nil {
		return issue.Wrap(err, "load trial records").
			WithResource(dir).
			WithSuggestion("Run 'envrank probe' first to record at least one version")
	}

	md := report.Render(records)

	if reportOut != "" {
		if err := os.WriteFile(reportOut, []byte(md), 0o644); err != nil {
			return issue.Wrap(err, "write report").WithResource(reportOut)
		}
		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("report written to "+reportOut))
		return nil
	}

	if reportPretty {
		styled, err := report.RenderTerminal(md)
		if err != nil {
			logger.Warn("falling back to plain markdown", "err", err)
		} else {
			md = styled
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), md)
	return nil
}
