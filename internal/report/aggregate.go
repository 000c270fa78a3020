// SPDX-License-Identifier: MPL-2.0

// Package report aggregates trial records from many target versions into a
// comparison report. It is purely presentational: all ranking logic lives
// in the engine, and the aggregator only reads what the recorder wrote.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"envrank/internal/record"
)

// recordGlob matches record files anywhere under the results tree.
const recordGlob = "**/*.json"

// Aggregator loads records from a results directory.
type Aggregator struct {
	ResultsDir string
	Logger     *log.Logger
}

// Load discovers, validates and sorts all trial records under ResultsDir.
// Files that fail schema validation are skipped with a warning rather than
// aborting the report.
func (a *Aggregator) Load() ([]*record.TrialRecord, error) {
	if _, err := os.Stat(a.ResultsDir); err != nil {
		return nil, fmt.Errorf("results directory: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(a.ResultsDir), recordGlob)
	if err != nil {
		return nil, fmt.Errorf("scan results directory: %w", err)
	}
	sort.Strings(matches)

	var records []*record.TrialRecord
	for _, m := range matches {
		rec, err := record.Read(filepath.Join(a.ResultsDir, m))
		if err != nil {
			if a.Logger != nil {
				a.Logger.Warn("skipping unreadable record", "file", m, "err", err)
			}
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return compareVersions(records[i].Version, records[j].Version) < 0
	})
	return records, nil
}

// compareVersions orders version tags numerically where possible ("8" before
// "11", "17.0.2" before "21") and lexically otherwise.
func compareVersions(a, b string) int {
	as := strings.FieldsFunc(a, versionSep)
	bs := strings.FieldsFunc(b, versionSep)
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aok := atoi(as[i])
		bn, bok := atoi(bs[i])
		switch {
		case aok && bok:
			if an != bn {
				return an - bn
			}
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	return len(as) - len(bs)
}

func versionSep(r rune) bool { return r == '.' || r == '-' || r == '_' }

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}
