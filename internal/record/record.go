// SPDX-License-Identifier: MPL-2.0

// Package record defines the serialized trial record, the one bit-exact
// contract between the probing engine and the report aggregator. Records
// are written once per engine run and never mutated.
package record

import (
	"time"

	"envrank/internal/engine"
)

type (
	// SanityRecord embeds the sanity trial's raw output and extracted
	// value. The JSON encoder escapes the raw output for safe embedding.
	SanityRecord struct {
		RawOutput string `json:"raw_output"`
		Value     string `json:"value"`
	}

	// TrialRecord is the full serialized outcome of one engine run against
	// one target version.
	TrialRecord struct {
		Version    string   `json:"version"`
		RunID      string   `json:"run_id"`
		Target     string   `json:"target"`
		Observable string   `json:"observable"`
		Supported  []string `json:"supported"`
		// Unsupported preserves detection order, like Supported.
		Unsupported []string `json:"unsupported"`
		// Pairwise maps "A_vs_B" to a mechanism name, "unsupported" or
		// "unknown".
		Pairwise map[string]string `json:"pairwise"`
		// Edges holds one expression per pair in the fixed evaluation
		// order: "A>B", "unsupported" or "unknown".
		Edges []string `json:"edges"`
		// Order is the inferred precedence, highest first; null when the
		// ranking was inconclusive.
		Order []string `json:"order"`
		// Sanity is null when the sanity trial was skipped.
		Sanity    *SanityRecord `json:"sanity"`
		Status    string        `json:"status"`
		CreatedAt time.Time     `json:"created_at"`
	}

	// Meta carries run provenance that the engine itself does not know.
	Meta struct {
		Version string
		RunID   string
		Target  string
	}
)

// New builds a TrialRecord from an engine result and run provenance.
func New(res *engine.Result, meta Meta, now time.Time) *TrialRecord {
	rec := &TrialRecord{
		Version:     meta.Version,
		RunID:       meta.RunID,
		Target:      meta.Target,
		Observable:  res.Observable,
		Supported:   emptyNotNil(res.Support.Supported),
		Unsupported: emptyNotNil(res.Support.Unsupported),
		Pairwise:    make(map[string]string, len(res.Pairwise)),
		Edges:       emptyNotNil(res.Edges),
		Order:       res.Order,
		Status:      res.Status,
		CreatedAt:   now.UTC(),
	}
	for _, o := range res.Pairwise {
		rec.Pairwise[o.Pair.Key()] = o.Result
	}
	if res.Sanity != nil {
		rec.Sanity = &SanityRecord{RawOutput: res.Sanity.Raw, Value: res.Sanity.Value}
	}
	return rec
}

// emptyNotNil keeps always-present list fields as [] rather than null in
// the serialized form; only Order and Sanity use null as a marker.
func emptyNotNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
