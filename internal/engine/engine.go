// SPDX-License-Identifier: MPL-2.0

// Package engine implements the precedence inference core. Given a set of
// candidate mechanisms and a Prober, it detects which mechanisms the target
// honors, runs a pairwise tournament among the supported ones, reconciles
// the outcomes into a total order (or an explicit inconclusive verdict),
// and cross-validates the order with an all-mechanisms sanity trial.
//
// The engine holds no cross-run state and is pure over the Prober boundary:
// tests drive it with a scripted prober and never spawn a process.
package engine

import (
	"context"

	"github.com/charmbracelet/log"

	"envrank/internal/probe"
)

// Outcome sentinels used wherever a definite winner is absent.
const (
	OutcomeUnsupported = "unsupported"
	OutcomeUnknown     = "unknown"
)

// Overall run status values.
const (
	StatusOK           = "ok"
	StatusMismatch     = "mismatch"
	StatusInconclusive = "inconclusive"
)

// Tag prefixes keep the three trial kinds from cross-talking: a stale
// support-detection value can never be mistaken for a pairwise winner.
const (
	supportTagPrefix = "probe-"
	pairTagPrefix    = "from-"
	sanityTagPrefix  = "all-"
)

type (
	// Prober runs one trial: each named mechanism is activated with a
	// payload that should set the observable key to its tag value.
	// Implementations spawn the real target; tests script the outcomes.
	Prober interface {
		Probe(ctx context.Context, tags map[string]string, observable string) (probe.Observation, error)
	}

	// Engine wires the inference pipeline. Mechanisms is the full candidate
	// set in input order; that order fixes pair enumeration and rank
	// tie-breaking.
	Engine struct {
		Prober     Prober
		Logger     *log.Logger
		Mechanisms []string
		Observable string
	}

	// Result is the immutable outcome of one engine run.
	Result struct {
		Observable string
		Support    SupportSet
		Pairwise   []PairOutcome
		// Edges holds one expression per pair in enumeration order:
		// "W>L" for a definite winner, else the outcome sentinel.
		Edges []string
		// Order is the inferred precedence, highest first, over exactly
		// the supported set. Nil means inconclusive.
		Order  []string
		Sanity *SanityResult
		Status string
	}
)

// Run executes the full pipeline: support detection, pairwise comparison,
// rank resolution, sanity validation. Probe ambiguity degrades individual
// outcomes; only Prober failures (setup errors) abort the run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	support, err := DetectSupport(ctx, e.Prober, e.Mechanisms, e.Observable, e.Logger)
	if err != nil {
		return nil, err
	}

	outcomes, err := ComparePairs(ctx, e.Prober, e.Mechanisms, support, e.Observable, e.Logger)
	if err != nil {
		return nil, err
	}

	order := ResolveRank(support.Supported, outcomes)

	sanity, err := ValidateSanity(ctx, e.Prober, support.Supported, order, e.Observable, e.Logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Observable: e.Observable,
		Support:    support,
		Pairwise:   outcomes,
		Edges:      EdgeExprs(outcomes),
		Order:      order,
		Sanity:     sanity,
		Status:     overallStatus(order, sanity),
	}
	if e.Logger != nil {
		e.Logger.Info("engine run complete", "status", res.Status, "order", res.Order)
	}
	return res, nil
}

// overallStatus applies the fixed precedence of verdicts: an inconclusive
// ranking dominates, then a sanity disagreement, then ok.
func overallStatus(order []string, sanity *SanityResult) string {
	if order == nil {
		return StatusInconclusive
	}
	if sanity != nil && sanity.Classification == SanityMismatch {
		return StatusMismatch
	}
	return StatusOK
}
