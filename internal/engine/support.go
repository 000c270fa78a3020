// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
)

// SupportSet partitions the candidate mechanisms after isolation trials.
// Both slices preserve detection order. Every candidate lands in exactly
// one of the two.
type SupportSet struct {
	Supported   []string
	Unsupported []string
}

// IsSupported reports whether the named mechanism passed its isolation trial.
func (s SupportSet) IsSupported(name string) bool {
	return slices.Contains(s.Supported, name)
}

// DetectSupport probes each mechanism alone with a self-identifying tag.
// A mechanism is supported iff the observed value equals the tag exactly;
// anything else, including a missing observable line, marks it unsupported.
// Unsupported mechanisms are excluded from every later trial.
func DetectSupport(ctx context.Context, p Prober, mechanisms []string, observable string, logger *log.Logger) (SupportSet, error) {
	var set SupportSet
	for _, m := range mechanisms {
		tag := supportTagPrefix + m
		obs, err := p.Probe(ctx, map[string]string{m: tag}, observable)
		if err != nil {
			return SupportSet{}, err
		}
		if obs.Found && obs.Value == tag {
			set.Supported = append(set.Supported, m)
			continue
		}
		set.Unsupported = append(set.Unsupported, m)
		if logger != nil {
			logger.Warn("mechanism not honored in isolation", "mechanism", m, "observed", obs.Value, "found", obs.Found, "exit", obs.ExitCode)
		}
	}
	if len(set.Supported) < 2 && logger != nil {
		logger.Warn("fewer than two supported mechanisms; ranking will be inconclusive", "supported", len(set.Supported))
	}
	return set, nil
}
