// SPDX-License-Identifier: MPL-2.0

// envrank probes an external runtime to determine the precedence among its
// environment-based configuration injection mechanisms, records one trial
// record per target version, and aggregates records into a comparison
// report.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"envrank/internal/config"
	"envrank/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug diagnostics
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// cfg is the loaded tool configuration
	cfg = config.DefaultConfig()

	rootCmd = &cobra.Command{
		Use:   "envrank",
		Short: "Rank environment-based configuration mechanisms by precedence",
		Long: TitleStyle.Render("envrank") + SubtitleStyle.Render(" - empirical precedence probing") + `

envrank determines, by repeated invocations of a target runtime with
controlled environments, which of several environment-variable injection
mechanisms wins when they all set the same option. It detects which
mechanisms are honored at all, runs every pair head to head, reconciles
the results into a total order (or reports them as inconclusive), and
cross-checks the order with an all-mechanisms trial.

` + SubtitleStyle.Render("Examples:") + `
  envrank probe                        Probe the default JVM target
  envrank probe --version-tag 21       Record under an explicit version tag
  envrank probe --profile my.toml      Probe a custom target profile
  envrank report                       Aggregate all recorded versions
  envrank report --pretty              Render the report in the terminal`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug diagnostics")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <config-dir>/envrank/config.toml)")

	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(reportCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. Analytical outcomes (mismatch, inconclusive) exit
// zero; only setup failures produce a non-zero exit.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initRootConfig loads the config file and applies it beneath flag values.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFileOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.Verbose
	}
}

// newLogger builds the operator-facing logger shared by all commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "envrank",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// formatErrorForDisplay renders errors for the operator, expanding setup
// errors with their suggestions.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var se *issue.SetupError
	if errors.As(err, &se) {
		return se.Format(verboseMode)
	}
	return err.Error()
}
