// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"slices"
	"sort"
)

// EdgeExprs converts outcomes into the record's edge expressions, one per
// pair in enumeration order: "W>L" for a definite winner, otherwise the
// outcome sentinel verbatim.
func EdgeExprs(outcomes []PairOutcome) []string {
	exprs := make([]string, len(outcomes))
	for i, o := range outcomes {
		switch o.Result {
		case o.Pair.A:
			exprs[i] = o.Pair.A + ">" + o.Pair.B
		case o.Pair.B:
			exprs[i] = o.Pair.B + ">" + o.Pair.A
		default:
			exprs[i] = o.Result
		}
	}
	return exprs
}

// ResolveRank reconciles the pairwise tournament into a total order over
// the supported set, highest precedence first. Nil means inconclusive.
//
// The resolution is win-count based, which is exact for the n <= 3 sets
// this tool targets whenever no cycle exists:
//
//  1. Definite outcomes become directed edges; unsupported and unknown
//     outcomes contribute nothing.
//  2. Fewer than n-1 edges cannot connect n mechanisms: inconclusive.
//  3. n == 3 with every win count at 1 is a rotation (A>B>C>A), the only
//     non-transitive arrangement three definite results allow: inconclusive.
//  4. Otherwise sort by descending win count. Ties keep the original input
//     order (stable sort) so the result is deterministic.
//
// Fewer than two supported mechanisms never yield an order; the sanity
// check has nothing meaningful to validate there.
func ResolveRank(supported []string, outcomes []PairOutcome) []string {
	n := len(supported)
	if n < 2 {
		return nil
	}

	wins := make(map[string]int, n)
	edges := 0
	for _, o := range outcomes {
		if o.Result != o.Pair.A && o.Result != o.Pair.B {
			continue
		}
		if !slices.Contains(supported, o.Pair.A) || !slices.Contains(supported, o.Pair.B) {
			continue
		}
		wins[o.Result]++
		edges++
	}

	if edges < n-1 {
		return nil
	}

	if n == 3 {
		rotation := true
		for _, m := range supported {
			if wins[m] != 1 {
				rotation = false
				break
			}
		}
		if rotation {
			return nil
		}
	}

	order := slices.Clone(supported)
	sort.SliceStable(order, func(i, j int) bool {
		return wins[order[i]] > wins[order[j]]
	})
	return order
}
