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

package logging

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
)

// LogEntry represents a structured log entry passed to formatters.
type LogEntry struct {
	// Timestamp is the time the log entry was created.
	Timestamp time.Time
	// Level is the severity level of the log entry.
	Level LogLevel
	// Message is the log message.
	Message string
	// Fields contains structured key-value pairs attached to the entry.
	Fields map[string]interface{}
}

// Formatter formats a LogEntry into bytes for output.
//
// Implementations control how log entries are rendered. Built-in formatters
// include TextFormatter and JSONFormatter.
type Formatter interface {
	Format(entry LogEntry) ([]byte, error)
}

// Level tag colors for terminal output. The color package disables itself
// automatically when output is not a terminal or NO_COLOR is set.
var (
	debugColor = color.New(color.FgCyan).SprintFunc()
	infoColor  = color.New(color.FgBlue).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
)

// colorizeLevel returns the bracketed, upper-cased level tag with the
// color appropriate for the level.
func colorizeLevel(level LogLevel) string {
	tag := fmt.Sprintf("[%s]", strings.ToUpper(level.String()))
	switch level {
	case LevelDebug:
		return debugColor(tag)
	case LevelInfo:
		return infoColor(tag)
	case LevelWarn:
		return warnColor(tag)
	case LevelError:
		return errorColor(tag)
	default:
		return tag
	}
}

// TextFormatter outputs human-readable text logs.
type TextFormatter struct {
	// TimeFormat sets the time format string. Empty disables timestamps.
	TimeFormat string
	// ShowLevel controls whether to show the log level prefix (e.g., [INFO]).
	ShowLevel bool
	// DisableColor turns off colored level tags regardless of terminal state.
	DisableColor bool
}

// Format formats a log entry as human-readable text.
func (f *TextFormatter) Format(entry LogEntry) ([]byte, error) {
	var parts []string

	if f.TimeFormat != "" {
		parts = append(parts, entry.Timestamp.Format(f.TimeFormat))
	}

	if f.ShowLevel {
		if f.DisableColor {
			parts = append(parts, fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())))
		} else {
			parts = append(parts, colorizeLevel(entry.Level))
		}
	}

	parts = append(parts, entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fieldParts := make([]string, 0, len(keys))
		for _, k := range keys {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, entry.Fields[k]))
		}
		parts = append(parts, strings.Join(fieldParts, " "))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

// JSONFormatter outputs structured JSON logs, one object per line.
type JSONFormatter struct {
	// TimeFormat sets the time format string. Defaults to RFC3339 when empty.
	TimeFormat string
}

// Format formats a log entry as a single-line JSON object.
func (f *JSONFormatter) Format(entry LogEntry) ([]byte, error) {
	timeFormat := f.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	obj := map[string]interface{}{
		"time":    entry.Timestamp.Format(timeFormat),
		"level":   entry.Level.String(),
		"message": entry.Message,
	}
	for k, v := range entry.Fields {
		obj[k] = v
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshaling log entry: %w", err)
	}

	return append(data, '\n'), nil
}
