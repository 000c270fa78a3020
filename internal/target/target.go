// SPDX-License-Identifier: MPL-2.0

// Package target defines probe target profiles. A profile describes an
// external runtime under test: the executable to invoke, the fixture
// program that reports the observable, and the set of environment-based
// injection mechanisms whose precedence is being measured.
//
// Profiles are plain TOML documents. A built-in profile for the JVM
// launcher ships embedded; additional profiles can be loaded from disk.
package target

import (
	"fmt"
	"strings"
)

// Placeholders recognized in payload and argv templates.
const (
	PlaceholderObservable = "{observable}"
	PlaceholderTag        = "{tag}"
	PlaceholderFixture    = "{fixture}"
)

type (
	// Mechanism is one environment-based injection channel of the target.
	// Payload is a template expanded per probe; it must instruct the target
	// to set the observable key to the given tag value.
	Mechanism struct {
		// Name identifies the mechanism in outcomes, orders and reports.
		Name string `toml:"name"`
		// EnvVar is the environment variable the mechanism reads.
		EnvVar string `toml:"env_var"`
		// Payload is the value template, e.g. "-D{observable}={tag}".
		Payload string `toml:"payload"`
	}

	// Fixture is the minimal program written into the probe workspace and
	// executed on every trial. It must print "<observable>=<value>" to its
	// standard streams.
	Fixture struct {
		FileName string `toml:"file_name"`
		Source   string `toml:"source"`
	}

	// Profile is a complete target description.
	Profile struct {
		// Name is a short profile identifier (e.g. "jvm").
		Name string `toml:"name"`
		// Exec is the target executable looked up on PATH.
		Exec string `toml:"exec"`
		// VersionArgs invoke the target so it reports its own version.
		VersionArgs []string `toml:"version_args"`
		// RunArgs is the trial argv template (after the executable).
		RunArgs []string `toml:"run_args"`
		// PassEnv lists extra host variables forwarded into every trial,
		// beyond the defaults the probe runner always forwards.
		PassEnv []string `toml:"pass_env"`
		// Mechanisms are the injection channels to rank.
		Mechanisms []Mechanism `toml:"mechanisms"`

		Fixture Fixture `toml:"fixture"`
	}
)

// RenderPayload expands the mechanism's payload template for one trial.
func (m Mechanism) RenderPayload(observable, tag string) string {
	s := strings.ReplaceAll(m.Payload, PlaceholderObservable, observable)
	return strings.ReplaceAll(s, PlaceholderTag, tag)
}

// MechanismNames returns the mechanism names in profile order.
func (p *Profile) MechanismNames() []string {
	names := make([]string, len(p.Mechanisms))
	for i, m := range p.Mechanisms {
		names[i] = m.Name
	}
	return names
}

// MechanismByName looks up a mechanism by its identifier.
func (p *Profile) MechanismByName(name string) (Mechanism, bool) {
	for _, m := range p.Mechanisms {
		if m.Name == name {
			return m, true
		}
	}
	return Mechanism{}, false
}

// Argv expands the run_args template against a concrete fixture path and
// observable key.
func (p *Profile) Argv(fixturePath, observable string) []string {
	argv := make([]string, len(p.RunArgs))
	for i, a := range p.RunArgs {
		a = strings.ReplaceAll(a, PlaceholderFixture, fixturePath)
		a = strings.ReplaceAll(a, PlaceholderObservable, observable)
		argv[i] = a
	}
	return argv
}

// Validate checks structural requirements before any probing starts.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if p.Exec == "" {
		return fmt.Errorf("profile %q: exec is required", p.Name)
	}
	if p.Fixture.FileName == "" || p.Fixture.Source == "" {
		return fmt.Errorf("profile %q: fixture file_name and source are required", p.Name)
	}
	if len(p.RunArgs) == 0 {
		return fmt.Errorf("profile %q: run_args is required", p.Name)
	}
	if len(p.Mechanisms) < 2 {
		return fmt.Errorf("profile %q: at least two mechanisms are required, got %d", p.Name, len(p.Mechanisms))
	}
	seenName := make(map[string]bool)
	seenVar := make(map[string]bool)
	for _, m := range p.Mechanisms {
		if m.Name == "" {
			return fmt.Errorf("profile %q: mechanism with empty name", p.Name)
		}
		if seenName[m.Name] {
			return fmt.Errorf("profile %q: duplicate mechanism %q", p.Name, m.Name)
		}
		seenName[m.Name] = true
		if m.EnvVar == "" {
			return fmt.Errorf("profile %q: mechanism %q has no env_var", p.Name, m.Name)
		}
		if seenVar[m.EnvVar] {
			return fmt.Errorf("profile %q: duplicate env_var %q", p.Name, m.EnvVar)
		}
		seenVar[m.EnvVar] = true
		if !strings.Contains(m.Payload, PlaceholderTag) {
			return fmt.Errorf("profile %q: mechanism %q payload must contain %s", p.Name, m.Name, PlaceholderTag)
		}
	}
	return nil
}
