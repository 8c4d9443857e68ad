// Copyright 2026 The Unisign Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads unisign settings from a YAML file. Command-line
// flags always take precedence; the file only supplies defaults for flags
// the user did not set.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file searched for in the working directory
// and the user's home directory.
const DefaultFileName = ".unisign.yaml"

// Config holds file-based defaults for the CLI.
type Config struct {
	// Key is the default SSH private key path for signing.
	Key string `yaml:"key,omitempty"`
	// PublicKey is the default SSH public key path for verification.
	PublicKey string `yaml:"public-key,omitempty"`
	// Section overrides the note section name for ELF and Mach-O injection.
	Section string `yaml:"section,omitempty"`
	// LogLevel is the default log level (debug, info, warn, error, silent).
	LogLevel string `yaml:"log-level,omitempty"`
	// LogFormat is the default log format (text or json).
	LogFormat string `yaml:"log-format,omitempty"`
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDefault looks for the default config file in the working directory,
// then in the user's home directory. A missing file is not an error: the
// zero Config is returned.
func LoadDefault() (*Config, error) {
	candidates := []string{DefaultFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultFileName))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}

	return &Config{}, nil
}

func (c *Config) validate() error {
	if c.LogLevel != "" {
		switch c.LogLevel {
		case "debug", "info", "warn", "warning", "error", "silent":
		default:
			return fmt.Errorf("unknown log-level %q", c.LogLevel)
		}
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log-format %q", c.LogFormat)
	}
	return nil
}

