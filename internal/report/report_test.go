// SPDX-License-Identifier: MPL-2.0

package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"envrank/internal/engine"
	"envrank/internal/record"
)

func writeRecord(t *testing.T, dir, version string, order []string, status string) {
	t.Helper()
	res := &engine.Result{
		Observable: "envrank.probe.k",
		Support: engine.SupportSet{
			Supported:   []string{"JAVA_TOOL_OPTIONS", "_JAVA_OPTIONS"},
			Unsupported: []string{"JDK_JAVA_OPTIONS"},
		},
		Pairwise: []engine.PairOutcome{
			{Pair: engine.Pair{A: "JAVA_TOOL_OPTIONS", B: "_JAVA_OPTIONS"}, Result: "_JAVA_OPTIONS"},
		},
		Edges:  []string{"_JAVA_OPTIONS>JAVA_TOOL_OPTIONS"},
		Order:  order,
		Status: status,
	}
	rec := record.New(res, record.Meta{Version: version, RunID: "01RID" + version, Target: "/usr/bin/java"}, time.Now())
	if err := rec.Write(filepath.Join(dir, version, "record.json")); err != nil {
		t.Fatalf("write record %s: %v", version, err)
	}
}

func TestAggregatorLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "21", []string{"_JAVA_OPTIONS", "JAVA_TOOL_OPTIONS"}, "ok")
	writeRecord(t, dir, "8", []string{"_JAVA_OPTIONS", "JAVA_TOOL_OPTIONS"}, "ok")
	writeRecord(t, dir, "11", nil, "inconclusive")

	// Invalid files are skipped, not fatal.
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte(`{"not": "a record"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	agg := &Aggregator{ResultsDir: dir}
	records, err := agg.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	gotVersions := []string{records[0].Version, records[1].Version, records[2].Version}
	if gotVersions[0] != "8" || gotVersions[1] != "11" || gotVersions[2] != "21" {
		t.Errorf("versions = %v, want numeric order [8 11 21]", gotVersions)
	}
}

func TestAggregatorLoad_MissingDir(t *testing.T) {
	t.Parallel()

	agg := &Aggregator{ResultsDir: filepath.Join(t.TempDir(), "absent")}
	if _, err := agg.Load(); err == nil {
		t.Fatal("Load should fail for a missing results directory")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRecord(t, dir, "17", []string{"_JAVA_OPTIONS", "JAVA_TOOL_OPTIONS"}, "ok")
	writeRecord(t, dir, "21", nil, "inconclusive")

	agg := &Aggregator{ResultsDir: dir}
	records, err := agg.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	md := Render(records)

	for _, want := range []string{
		"## Summary",
		"## Support matrix",
		"## Details",
		"_JAVA_OPTIONS > JAVA_TOOL_OPTIONS",
		"inconclusive",
		"| 17 |",
		"| 21 |",
		"```json",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q:\n%s", want, md)
		}
	}

	// Support matrix marks the unsupported mechanism.
	if !strings.Contains(md, "JDK_JAVA_OPTIONS") {
		t.Error("support matrix should include unsupported mechanisms")
	}
}

func TestRender_NoRecords(t *testing.T) {
	t.Parallel()

	md := Render(nil)
	if !strings.Contains(md, "No trial records found") {
		t.Errorf("empty report = %q", md)
	}
}

func TestFormatOrder(t *testing.T) {
	t.Parallel()

	if got := FormatOrder(nil); got != "inconclusive" {
		t.Errorf("FormatOrder(nil) = %q", got)
	}
	if got := FormatOrder([]string{"A", "B"}); got != "A > B" {
		t.Errorf("FormatOrder = %q, want A > B", got)
	}
}

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int // sign only
	}{
		{"8", "11", -1},
		{"21", "8", 1},
		{"17.0.2", "17.0.10", -1},
		{"21", "21", 0},
		{"21-ea", "21", 1},
		{"graal-21", "graal-8", 1},
	}
	for _, tt := range tests {
		got := compareVersions(tt.a, tt.b)
		switch {
		case tt.want < 0 && got >= 0,
			tt.want > 0 && got <= 0,
			tt.want == 0 && got != 0:
			t.Errorf("compareVersions(%q, %q) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}
