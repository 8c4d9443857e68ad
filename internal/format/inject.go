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

package format

import (
	"errors"
	"fmt"
	"os"
)

// ErrUnsupportedFormat is returned when the artifact format is not one of
// the injectable formats.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// InjectOptions configures placeholder injection into an artifact.
type InjectOptions struct {
	// InputPath is the artifact to inject the placeholder into.
	InputPath string
	// OutputPath is where the modified artifact is written.
	// Defaults to InputPath + ".placeholder".
	OutputPath string
	// Placeholder is the magic string to embed.
	Placeholder string
	// SectionName overrides the note section name for ELF and Mach-O
	// binaries. Ignored for other formats.
	SectionName string
}

// InjectResult describes a completed injection.
type InjectResult struct {
	// Format is the detected artifact format.
	Format Format
	// OutputPath is where the modified artifact was written.
	OutputPath string
}

// Inject detects the artifact format and embeds the placeholder using the
// format's mechanism. Executables keep their file mode so they stay
// runnable after injection.
func Inject(opts InjectOptions) (InjectResult, error) {
	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return InjectResult{}, fmt.Errorf("reading input file: %w", err)
	}

	detected := Detect(data, opts.InputPath)

	var output []byte
	switch detected {
	case FormatELF:
		output, err = InjectELF(data, opts.Placeholder, opts.SectionName)
	case FormatMachO:
		output, err = InjectMachO(data, opts.Placeholder, opts.SectionName)
	case FormatPDF:
		output, err = InjectPDF(data, opts.Placeholder)
	case FormatZIP:
		output, err = InjectZIP(data, opts.Placeholder)
	default:
		return InjectResult{}, fmt.Errorf(
			"%w: %s (ELF, Mach-O, PDF, and ZIP files are supported)", ErrUnsupportedFormat, opts.InputPath)
	}
	if err != nil {
		return InjectResult{}, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = opts.InputPath + ".placeholder"
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(opts.InputPath); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(outputPath, output, mode); err != nil {
		return InjectResult{}, fmt.Errorf("writing output file: %w", err)
	}

	return InjectResult{Format: detected, OutputPath: outputPath}, nil
}
