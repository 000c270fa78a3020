// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"

	"github.com/charmbracelet/log"
)

type (
	// Pair is an unordered mechanism pair, stored in enumeration order.
	Pair struct {
		A, B string
	}

	// PairOutcome records one head-to-head result. Result is the winning
	// mechanism's name, or OutcomeUnsupported / OutcomeUnknown.
	PairOutcome struct {
		Pair   Pair
		Result string
	}
)

// Key renders the record-contract pair name, e.g. "A_vs_B".
func (p Pair) Key() string { return p.A + "_vs_" + p.B }

// EnumeratePairs lists every unordered pair in the fixed evaluation order:
// i<j over the input order. The record's edge sequence relies on this
// order being stable.
func EnumeratePairs(mechanisms []string) []Pair {
	var pairs []Pair
	for i := 0; i < len(mechanisms); i++ {
		for j := i + 1; j < len(mechanisms); j++ {
			pairs = append(pairs, Pair{A: mechanisms[i], B: mechanisms[j]})
		}
	}
	return pairs
}

// ComparePairs runs the head-to-head trials. Pairs touching an unsupported
// mechanism short-circuit to OutcomeUnsupported without a process spawn.
// Each remaining pair gets exactly one trial, no retries: the target is
// assumed deterministic for a given environment.
func ComparePairs(ctx context.Context, p Prober, mechanisms []string, support SupportSet, observable string, logger *log.Logger) ([]PairOutcome, error) {
	pairs := EnumeratePairs(mechanisms)
	outcomes := make([]PairOutcome, 0, len(pairs))
	for _, pair := range pairs {
		if !support.IsSupported(pair.A) || !support.IsSupported(pair.B) {
			outcomes = append(outcomes, PairOutcome{Pair: pair, Result: OutcomeUnsupported})
			continue
		}

		tagA := pairTagPrefix + pair.A
		tagB := pairTagPrefix + pair.B
		obs, err := p.Probe(ctx, map[string]string{pair.A: tagA, pair.B: tagB}, observable)
		if err != nil {
			return nil, err
		}

		switch {
		case obs.Found && obs.Value == tagA:
			outcomes = append(outcomes, PairOutcome{Pair: pair, Result: pair.A})
		case obs.Found && obs.Value == tagB:
			outcomes = append(outcomes, PairOutcome{Pair: pair, Result: pair.B})
		default:
			outcomes = append(outcomes, PairOutcome{Pair: pair, Result: OutcomeUnknown})
			if logger != nil {
				logger.Warn("ambiguous pairwise trial", "pair", pair.Key(), "observed", obs.Value, "raw", obs.Raw)
			}
		}
	}
	return outcomes, nil
}
