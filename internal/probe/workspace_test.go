// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"os"
	"testing"
)

func TestWorkspace_CreateAndClose(t *testing.T) {
	t.Parallel()

	ws, err := NewWorkspace("probe.txt", "fixture contents\n", false, nil)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}

	data, err := os.ReadFile(ws.FixturePath())
	if err != nil {
		t.Fatalf("fixture not written: %v", err)
	}
	if string(data) != "fixture contents\n" {
		t.Errorf("fixture contents = %q", data)
	}

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace %s still exists after Close", ws.Dir())
	}
}

func TestWorkspace_KeepSkipsCleanup(t *testing.T) {
	t.Parallel()

	ws, err := NewWorkspace("probe.txt", "x", true, nil)
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}
	defer os.RemoveAll(ws.Dir())

	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(ws.FixturePath()); err != nil {
		t.Errorf("kept workspace should survive Close: %v", err)
	}
}
