// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"envrank/internal/engine"
	"envrank/internal/issue"
	"envrank/internal/probe"
	"envrank/internal/record"
	"envrank/internal/report"
	"envrank/internal/target"
)

var (
	probeProfile       string
	probeObservable    string
	probeVersionTag    string
	probeOut           string
	probeResultsDir    string
	probeKeepWorkspace bool

	probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Probe one target version and record its mechanism precedence",
		Long: `Probe the target runtime: detect which mechanisms are honored, run
every supported pair head to head, infer the precedence order, sanity-check
it with an all-mechanisms trial, and write the trial record.

The engine always completes and records an outcome; mismatch and
inconclusive are reportable results, not failures. Only a missing target
executable or an unusable workspace aborts the run.`,
		Args: cobra.NoArgs,
		RunE: runProbe,
	}
)

func init() {
	probeCmd.Flags().StringVar(&probeProfile, "profile", "", "target profile TOML file (default: built-in jvm profile)")
	probeCmd.Flags().StringVar(&probeObservable, "observable", "", "observable key (default: randomized per run)")
	probeCmd.Flags().StringVar(&probeVersionTag, "version-tag", "", "version tag for the record (default: target's reported version)")
	probeCmd.Flags().StringVar(&probeOut, "out", "", "record output path (default: <results-dir>/<version-tag>.json)")
	probeCmd.Flags().StringVar(&probeResultsDir, "results-dir", "", "results directory (default from config)")
	probeCmd.Flags().BoolVar(&probeKeepWorkspace, "keep-workspace", false, "keep the probe workspace for inspection")
}

func runProbe(cmd *cobra.Command, _ []string) error {
	logger := newLogger()

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	keep := probeKeepWorkspace || cfg.KeepWorkspace
	ws, err := probe.NewWorkspace(profile.Fixture.FileName, profile.Fixture.Source, keep, logger)
	if err != nil {
		return issue.Wrap(err, "create probe workspace")
	}
	defer func() {
		if cerr := ws.Close(); cerr != nil {
			logger.Warn("failed to clean probe workspace", "dir", ws.Dir(), "err", cerr)
		}
	}()

	runner, err := probe.NewRunner(profile, ws, logger)
	if err != nil {
		return issue.Wrap(err, "resolve target executable").
			WithResource(profile.Exec).
			WithSuggestion(fmt.Sprintf("Install %q or adjust the profile's exec entry", profile.Exec)).
			WithSuggestion("Check that the executable is on PATH")
	}

	versionTag := probeVersionTag
	if versionTag == "" {
		versionTag, err = runner.Version(cmd.Context())
		if err != nil {
			return issue.Wrap(err, "determine target version").
				WithSuggestion("Pass an explicit --version-tag")
		}
	}

	observable := probeObservable
	if observable == "" {
		observable = engine.NewObservableKey()
	}

	logger.Info("probing target", "profile", profile.Name, "target", runner.ExecPath(), "version", versionTag, "observable", observable)

	eng := &engine.Engine{
		Prober:     runner,
		Logger:     logger,
		Mechanisms: profile.MechanismNames(),
		Observable: observable,
	}
	res, err := eng.Run(cmd.Context())
	if err != nil {
		return issue.Wrap(err, "probe target")
	}

	rec := record.New(res, record.Meta{
		Version: versionTag,
		RunID:   ulid.Make().String(),
		Target:  runner.ExecPath(),
	}, time.Now())

	out := probeOut
	if out == "" {
		out = filepath.Join(resultsDir(), recordFileName(versionTag))
	}
	if err := rec.Write(out); err != nil {
		return issue.Wrap(err, "write trial record").WithResource(out)
	}

	printSummary(cmd, rec, out)
	return nil
}

func loadProfile() (*target.Profile, error) {
	path := probeProfile
	if path == "" {
		path = cfg.Profile
	}
	if path == "" {
		p, err := target.BuiltinJVM()
		if err != nil {
			return nil, issue.Wrap(err, "load built-in jvm profile")
		}
		return p, nil
	}
	p, err := target.Load(path)
	if err != nil {
		return nil, issue.Wrap(err, "load target profile").WithResource(path)
	}
	return p, nil
}

func resultsDir() string {
	if probeResultsDir != "" {
		return probeResultsDir
	}
	return cfg.ResultsDir
}

// recordFileName derives a filesystem-safe record name from a version tag.
func recordFileName(versionTag string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, versionTag)
	return safe + ".json"
}

func printSummary(cmd *cobra.Command, rec *record.TrialRecord, out string) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, TitleStyle.Render("envrank probe")+" "+SubtitleStyle.Render(rec.Version))
	fmt.Fprintln(w, "  status:      "+statusStyle(rec.Status).Render(rec.Status))
	fmt.Fprintln(w, "  supported:   "+MechStyle.Render(joinOrNone(rec.Supported)))
	fmt.Fprintln(w, "  unsupported: "+joinOrNone(rec.Unsupported))
	fmt.Fprintln(w, "  order:       "+MechStyle.Render(report.FormatOrder(rec.Order)))
	if rec.Sanity != nil {
		fmt.Fprintln(w, "  sanity:      observed "+MechStyle.Render(rec.Sanity.Value))
	} else {
		fmt.Fprintln(w, "  sanity:      skipped")
	}
	fmt.Fprintln(w, SubtitleStyle.Render("  record: "+out))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
