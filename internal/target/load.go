// SPDX-License-Identifier: MPL-2.0

package target

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed jvm.toml
var jvmProfileTOML []byte

// BuiltinJVM returns the embedded JVM profile covering the three launcher
// option variables (JAVA_TOOL_OPTIONS, JDK_JAVA_OPTIONS, _JAVA_OPTIONS).
func BuiltinJVM() (*Profile, error) {
	return parse(jvmProfileTOML, "embedded jvm profile")
}

// Load reads and validates a profile from a TOML file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", source, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", source, err)
	}
	return &p, nil
}
