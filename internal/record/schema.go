// SPDX-License-Identifier: MPL-2.0

package record

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed trial_record.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("trial_record.schema.json", bytes.NewReader([]byte(schemaJSON))); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile("trial_record.schema.json")
	})
	return schema, schemaErr
}

// ValidateJSON checks serialized record bytes against the embedded schema.
// The recorder validates everything it writes; the aggregator validates
// everything it reads.
func ValidateJSON(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile trial record schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse trial record: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("trial record does not match schema: %w", err)
	}
	return nil
}
