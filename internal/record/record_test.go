// SPDX-License-Identifier: MPL-2.0

package record

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"envrank/internal/engine"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Observable: "envrank.probe.k1",
		Support: engine.SupportSet{
			Supported:   []string{"JAVA_TOOL_OPTIONS", "_JAVA_OPTIONS"},
			Unsupported: []string{"JDK_JAVA_OPTIONS"},
		},
		Pairwise: []engine.PairOutcome{
			{Pair: engine.Pair{A: "JAVA_TOOL_OPTIONS", B: "JDK_JAVA_OPTIONS"}, Result: engine.OutcomeUnsupported},
			{Pair: engine.Pair{A: "JAVA_TOOL_OPTIONS", B: "_JAVA_OPTIONS"}, Result: "_JAVA_OPTIONS"},
			{Pair: engine.Pair{A: "JDK_JAVA_OPTIONS", B: "_JAVA_OPTIONS"}, Result: engine.OutcomeUnsupported},
		},
		Edges:  []string{"unsupported", "_JAVA_OPTIONS>JAVA_TOOL_OPTIONS", "unsupported"},
		Order:  []string{"_JAVA_OPTIONS", "JAVA_TOOL_OPTIONS"},
		Sanity: &engine.SanityResult{Raw: "probe.key=all-_JAVA_OPTIONS\n", Value: "all-_JAVA_OPTIONS", Classification: engine.SanityOK},
		Status: engine.StatusOK,
	}
}

func sampleMeta() Meta {
	return Meta{Version: "21.0.1", RunID: "01TESTULID", Target: "/usr/bin/java"}
}

func TestNew(t *testing.T) {
	t.Parallel()

	rec := New(sampleResult(), sampleMeta(), time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC))

	if rec.Version != "21.0.1" || rec.Target != "/usr/bin/java" {
		t.Errorf("meta not carried: %+v", rec)
	}
	if got := rec.Pairwise["JAVA_TOOL_OPTIONS_vs__JAVA_OPTIONS"]; got != "_JAVA_OPTIONS" {
		t.Errorf("pairwise winner = %q, want _JAVA_OPTIONS", got)
	}
	if len(rec.Pairwise) != 3 {
		t.Errorf("pairwise entries = %d, want 3", len(rec.Pairwise))
	}
	if !slices.Equal(rec.Order, []string{"_JAVA_OPTIONS", "JAVA_TOOL_OPTIONS"}) {
		t.Errorf("order = %v", rec.Order)
	}
	if rec.Sanity == nil || rec.Sanity.Value != "all-_JAVA_OPTIONS" {
		t.Errorf("sanity = %+v", rec.Sanity)
	}
}

func TestMarshal_NullMarkers(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	res.Order = nil
	res.Sanity = nil
	res.Status = engine.StatusInconclusive

	data, err := New(res, sampleMeta(), time.Now()).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := string(doc["order"]); got != "null" {
		t.Errorf("order = %s, want null when inconclusive", got)
	}
	if got := string(doc["sanity"]); got != "null" {
		t.Errorf("sanity = %s, want null when skipped", got)
	}
	// Always-present list fields stay arrays even when empty.
	if strings.Contains(string(doc["supported"]), "null") {
		t.Errorf("supported = %s, want an array", doc["supported"])
	}
}

func TestMarshal_EscapesRawOutput(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	res.Sanity.Raw = "line1\nline2 \"quoted\"\n"

	data, err := New(res, sampleMeta(), time.Now()).Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), `line1\nline2 \"quoted\"`) {
		t.Errorf("raw output not escaped for embedding:\n%s", data)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	t.Parallel()

	rec := New(sampleResult(), sampleMeta(), time.Now())
	path := filepath.Join(t.TempDir(), "nested", "21.json")

	if err := rec.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Version != rec.Version || got.Status != rec.Status {
		t.Errorf("round trip mismatch: %+v vs %+v", got, rec)
	}
	if !slices.Equal(got.Edges, rec.Edges) {
		t.Errorf("edges = %v, want %v", got.Edges, rec.Edges)
	}
}

func TestValidateJSON_RejectsBadStatus(t *testing.T) {
	t.Parallel()

	rec := New(sampleResult(), sampleMeta(), time.Now())
	rec.Status = "sideways"

	data, err := rec.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := ValidateJSON(data); err == nil {
		t.Fatal("ValidateJSON should reject an unknown status")
	}
}

func TestValidateJSON_RejectsMissingFields(t *testing.T) {
	t.Parallel()

	if err := ValidateJSON([]byte(`{"version": "21"}`)); err == nil {
		t.Fatal("ValidateJSON should reject a record missing required fields")
	}
}
