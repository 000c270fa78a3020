// SPDX-License-Identifier: MPL-2.0

package main

import "testing"

func TestRecordFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag  string
		want string
	}{
		{"21", "21.json"},
		{"21.0.1", "21.0.1.json"},
		{`openjdk version "21.0.1" 2023-10-17`, "openjdk_version__21.0.1__2023-10-17.json"},
		{"temurin/21", "temurin_21.json"},
	}
	for _, tt := range tests {
		if got := recordFileName(tt.tag); got != tt.want {
			t.Errorf("recordFileName(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestJoinOrNone(t *testing.T) {
	t.Parallel()

	if got := joinOrNone(nil); got != "(none)" {
		t.Errorf("joinOrNone(nil) = %q", got)
	}
	if got := joinOrNone([]string{"A", "B"}); got != "A, B" {
		t.Errorf("joinOrNone = %q", got)
	}
}
