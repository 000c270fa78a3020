// SPDX-License-Identifier: MPL-2.0

// Package probe spawns the target executable under controlled environments
// and extracts the observable value from its combined output. It owns all
// process mechanics so the engine's tournament logic stays pure.
package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"envrank/internal/target"
)

// baseEnvVars are always forwarded from the host into trial environments.
// Everything else, in particular any ambient mechanism variable, is dropped
// so only the caller-requested mechanisms are active.
var baseEnvVars = []string{"PATH", "HOME", "TMPDIR", "SystemRoot", "USERPROFILE"}

type (
	// Observation is the outcome of one trial: the raw combined output,
	// the extracted observable value (Found reports whether the expected
	// line appeared at all), and the target's exit code.
	Observation struct {
		Raw      string
		Value    string
		Found    bool
		ExitCode int
	}

	// Runner invokes the target once per trial. Each call spawns one
	// process; calls are strictly sequential.
	Runner struct {
		profile   *target.Profile
		execPath  string
		workspace *Workspace
		logger    *log.Logger
	}
)

// NewRunner resolves the target executable and binds it to a workspace.
// A missing executable is a fatal setup error.
func NewRunner(profile *target.Profile, ws *Workspace, logger *log.Logger) (*Runner, error) {
	execPath, err := exec.LookPath(profile.Exec)
	if err != nil {
		return nil, fmt.Errorf("target executable %q not found: %w", profile.Exec, err)
	}
	return &Runner{profile: profile, execPath: execPath, workspace: ws, logger: logger}, nil
}

// ExecPath returns the resolved target executable path.
func (r *Runner) ExecPath() string { return r.execPath }

// Probe runs one trial with the given mechanisms active. tags maps a
// mechanism name to the self-identifying value its payload should inject
// for the observable key. A non-zero exit from the target is not fatal;
// the combined output is still inspected for the observable line.
func (r *Runner) Probe(ctx context.Context, tags map[string]string, observable string) (Observation, error) {
	env := r.baseEnv()
	for name, tag := range tags {
		mech, ok := r.profile.MechanismByName(name)
		if !ok {
			return Observation{}, fmt.Errorf("profile %q has no mechanism %q", r.profile.Name, name)
		}
		env = append(env, mech.EnvVar+"="+mech.RenderPayload(observable, tag))
	}

	argv := r.profile.Argv(r.workspace.FixturePath(), observable)
	raw, exitCode, err := r.run(ctx, argv, env)
	if err != nil {
		return Observation{}, err
	}

	obs := Observation{Raw: raw, ExitCode: exitCode}
	obs.Value, obs.Found = ExtractValue(raw, observable)
	if r.logger != nil {
		r.logger.Debug("probe trial", "mechanisms", mechanismList(tags), "exit", exitCode, "value", obs.Value, "found", obs.Found)
	}
	return obs, nil
}

// Version invokes the target's version argv and returns the first
// non-empty line of its combined output, for use as a default version tag.
func (r *Runner) Version(ctx context.Context) (string, error) {
	if len(r.profile.VersionArgs) == 0 {
		return "", fmt.Errorf("profile %q declares no version_args", r.profile.Name)
	}
	raw, _, err := r.run(ctx, r.profile.VersionArgs, r.baseEnv())
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("target %q produced no version output", r.profile.Exec)
}

// run executes the target with the given argv and environment, capturing
// stdout and stderr combined. Only failures to start the process are
// returned as errors.
func (r *Runner) run(ctx context.Context, argv []string, env []string) (string, int, error) {
	cmd := exec.CommandContext(ctx, r.execPath, argv...)
	cmd.Dir = r.workspace.Dir()
	cmd.Env = env

	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return combined.String(), exitErr.ExitCode(), nil
		}
		return "", -1, fmt.Errorf("invoke target %q: %w", r.execPath, err)
	}
	return combined.String(), 0, nil
}

// baseEnv builds the minimal trial environment from the host environment.
func (r *Runner) baseEnv() []string {
	keep := append([]string{}, baseEnvVars...)
	keep = append(keep, r.profile.PassEnv...)

	env := make([]string, 0, len(keep))
	for _, name := range keep {
		if v, ok := os.LookupEnv(name); ok {
			env = append(env, name+"="+v)
		}
	}
	return env
}

func mechanismList(tags map[string]string) []string {
	names := make([]string, 0, len(tags))
	for name := range tags {
		names = append(names, name)
	}
	return names
}
