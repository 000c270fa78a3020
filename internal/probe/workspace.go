// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Workspace is the scratch directory holding the fixture program. It is
// created once per engine run, read-only after creation, and removed by
// Close unless the caller asked to keep it for inspection.
type Workspace struct {
	dir     string
	fixture string
	keep    bool
	logger  *log.Logger
}

// NewWorkspace creates the scratch directory and writes the fixture file
// into it. A failure here is a setup error: no probing can proceed.
func NewWorkspace(fixtureName, fixtureSource string, keep bool, logger *log.Logger) (*Workspace, error) {
	dir, err := os.MkdirTemp("", "envrank-*")
	if err != nil {
		return nil, fmt.Errorf("create probe workspace: %w", err)
	}
	path := filepath.Join(dir, fixtureName)
	if err := os.WriteFile(path, []byte(fixtureSource), 0o644); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("write fixture %s: %w", fixtureName, err)
	}
	return &Workspace{dir: dir, fixture: path, keep: keep, logger: logger}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// FixturePath returns the absolute path of the fixture program.
func (w *Workspace) FixturePath() string { return w.fixture }

// Close removes the workspace. With keep enabled it leaves the directory
// in place and logs where to find it.
func (w *Workspace) Close() error {
	if w.keep {
		if w.logger != nil {
			w.logger.Info("probe workspace kept", "dir", w.dir)
		}
		return nil
	}
	return os.RemoveAll(w.dir)
}
