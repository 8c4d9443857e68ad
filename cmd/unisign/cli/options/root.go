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

package options

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/oreparaz/unisign/pkg/config"
	"github.com/oreparaz/unisign/pkg/logging"
)

// DefaultTimeout specifies the default timeout duration for commands.
const DefaultTimeout = 3 * time.Minute

// RootOptions defines flags and options for the root CLI command.
// These options are available globally across all subcommands.
type RootOptions struct {
	// OutputFile specifies a file path to redirect output to instead of stdout.
	OutputFile string
	// LogLevel sets the minimum log level (debug, info, warn, error, silent).
	LogLevel string
	// LogFormat sets the log output format (text, json).
	LogFormat string
	// Timeout sets the maximum duration for command execution.
	Timeout time.Duration
	// ConfigPath points at an explicit config file. When empty, the default
	// locations are searched.
	ConfigPath string

	// Config holds the loaded file-based defaults. Populated before any
	// subcommand runs.
	Config *config.Config
}

var _ FlagAdder = (*RootOptions)(nil)

// AddFlags adds root-level flags to the cobra command: output file
// redirection, log level/format, config file, and command timeout.
func (o *RootOptions) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&o.OutputFile, "output-file", "",
		"redirect command output to a file")
	_ = cmd.MarkPersistentFlagFilename("output-file")

	cmd.PersistentFlags().StringVar(&o.LogLevel, "log-level", "",
		"set the minimum log level (debug, info, warn, error, silent)")

	cmd.PersistentFlags().StringVar(&o.LogFormat, "log-format", "",
		"set the log output format (text, json)")

	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", "",
		"path to the config file (default: .unisign.yaml in the working or home directory)")
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	cmd.PersistentFlags().DurationVarP(&o.Timeout, "timeout", "t", DefaultTimeout,
		"timeout for commands")
}

// LoadConfig populates o.Config from the explicit --config path or the
// default search locations.
func (o *RootOptions) LoadConfig() error {
	if o.ConfigPath != "" {
		cfg, err := config.Load(o.ConfigPath)
		if err != nil {
			return err
		}
		o.Config = cfg
		return nil
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	o.Config = cfg
	return nil
}

// GetLogLevel returns the effective log level: the flag when set, then the
// config file, then info.
func (o *RootOptions) GetLogLevel() logging.LogLevel {
	level := o.LogLevel
	if level == "" && o.Config != nil {
		level = o.Config.LogLevel
	}
	if level == "" {
		level = "info"
	}
	return logging.ParseLogLevel(level)
}

// GetLogFormat returns the effective log format: the flag when set, then
// the config file, then text.
func (o *RootOptions) GetLogFormat() logging.LogFormat {
	format := o.LogFormat
	if format == "" && o.Config != nil {
		format = o.Config.LogFormat
	}
	if format == "" {
		format = "text"
	}
	return logging.ParseLogFormat(format)
}

// NewLogger creates a new logger based on the root options.
func (o *RootOptions) NewLogger() logging.Logger {
	return logging.NewLogger(logging.LoggerOptions{
		Level:  o.GetLogLevel(),
		Format: o.GetLogFormat(),
	})
}
