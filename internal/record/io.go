// SPDX-License-Identifier: MPL-2.0

package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Marshal serializes the record in its canonical indented form.
func (r *TrialRecord) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal trial record: %w", err)
	}
	return append(data, '\n'), nil
}

// Write validates the record against the schema and writes it to path,
// creating parent directories as needed.
func (r *TrialRecord) Write(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := ValidateJSON(data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write trial record: %w", err)
	}
	return nil
}

// Read loads and schema-validates a record file.
func Read(path string) (*TrialRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trial record: %w", err)
	}
	if err := ValidateJSON(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var rec TrialRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse trial record %s: %w", path, err)
	}
	return &rec, nil
}
