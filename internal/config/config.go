// SPDX-License-Identifier: MPL-2.0

// Package config loads envrank tool configuration: a TOML file in the
// platform config directory, overridable per-key through ENVRANK_*
// environment variables, with CLI flags taking precedence in the command
// layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "envrank"
	// ConfigFileName is the config file base name.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config holds tool-level settings. Zero values fall back to defaults.
type Config struct {
	// ResultsDir is where trial records are written and read.
	ResultsDir string `mapstructure:"results_dir"`
	// Profile is a path to a target profile TOML file; empty selects the
	// built-in JVM profile.
	Profile string `mapstructure:"profile"`
	// KeepWorkspace leaves the probe workspace on disk after a run.
	KeepWorkspace bool `mapstructure:"keep_workspace"`
	// Verbose enables debug-level diagnostics.
	Verbose bool `mapstructure:"verbose"`
}

// configFileOverride allows --config and tests to pin the config file.
var configFileOverride string

// SetConfigFileOverride pins an explicit config file path. An empty string
// restores the default search behavior.
func SetConfigFileOverride(path string) { configFileOverride = path }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		ResultsDir: "results",
	}
}

// ConfigDir returns the envrank configuration directory using platform
// conventions: %APPDATA% on Windows, ~/Library/Application Support on
// macOS, $XDG_CONFIG_HOME (default ~/.config) elsewhere.
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the config file (if any) and environment overrides. A missing
// config file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("results_dir", defaults.ResultsDir)
	v.SetDefault("profile", defaults.Profile)
	v.SetDefault("keep_workspace", defaults.KeepWorkspace)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFileOverride != "" {
		v.SetConfigFile(configFileOverride)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missingFromSearchPath := configFileOverride == "" && errors.As(err, &notFound)
		if !missingFromSearchPath {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
