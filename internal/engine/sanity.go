// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// Sanity trial classifications.
const (
	SanityOK       = "ok"
	SanityMismatch = "mismatch"
	SanitySkipped  = "skipped"
)

// SanityResult is the all-supported-mechanisms cross-check. Raw carries
// the full captured output for the record; Value is the extracted
// observable value (empty when absent).
type SanityResult struct {
	Raw            string
	Value          string
	Classification string
}

// ValidateSanity runs one trial with every supported mechanism active and
// checks that the observed winner matches the predicted top mechanism.
// Without a prediction, or with fewer than two supported mechanisms, there
// is nothing to validate and the result is nil.
func ValidateSanity(ctx context.Context, p Prober, supported, order []string, observable string, logger *log.Logger) (*SanityResult, error) {
	if order == nil || len(supported) < 2 {
		return nil, nil
	}

	tags := make(map[string]string, len(supported))
	for _, m := range supported {
		tags[m] = sanityTagPrefix + m
	}
	obs, err := p.Probe(ctx, tags, observable)
	if err != nil {
		return nil, err
	}

	res := &SanityResult{Raw: obs.Raw, Value: obs.Value}
	winner, ok := mechanismFromTag(obs.Value, supported)
	switch {
	case ok && winner == order[0]:
		res.Classification = SanityOK
	default:
		res.Classification = SanityMismatch
		if logger != nil {
			logger.Warn("sanity trial disagrees with inferred order", "predicted", order[0], "observed", obs.Value, "raw", obs.Raw)
		}
	}
	return res, nil
}

// mechanismFromTag maps an observed sanity value back to the mechanism
// whose tag it is.
func mechanismFromTag(value string, supported []string) (string, bool) {
	name, ok := strings.CutPrefix(value, sanityTagPrefix)
	if !ok {
		return "", false
	}
	for _, m := range supported {
		if m == name {
			return m, true
		}
	}
	return "", false
}
