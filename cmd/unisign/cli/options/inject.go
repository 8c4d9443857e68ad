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
	"github.com/spf13/cobra"
)

// InjectOptions defines flags for the inject command.
type InjectOptions struct {
	// OutputPath is where the modified artifact is written.
	OutputPath string
	// SectionName overrides the note section name for ELF and Mach-O
	// binaries. Falls back to the config file, then the format default.
	SectionName string
}

var _ FlagAdder = (*InjectOptions)(nil)

// AddFlags adds the inject flags to the cobra command.
func (o *InjectOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.OutputPath, "output", "o", "",
		"output file (default: input file with .placeholder suffix)")
	_ = cmd.MarkFlagFilename("output")

	cmd.Flags().StringVar(&o.SectionName, "section", "",
		"note section name for ELF and Mach-O binaries (default: format-specific)")
}

// ResolveSection returns the effective section name, consulting the config
// file when the flag is empty. Empty means the format default.
func (o *InjectOptions) ResolveSection(ro *RootOptions) string {
	if o.SectionName != "" {
		return o.SectionName
	}
	if ro.Config != nil {
		return ro.Config.Section
	}
	return ""
}
