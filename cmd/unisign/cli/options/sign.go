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
	"fmt"

	"github.com/spf13/cobra"
)

// SignOptions defines flags for the sign command.
type SignOptions struct {
	PassphraseFlags
	// KeyPath is the OpenSSH Ed25519 private key. Falls back to the config
	// file when the flag is not set.
	KeyPath string
	// OutputPath is where the signed artifact is written.
	OutputPath string
}

var _ FlagAdder = (*SignOptions)(nil)

// AddFlags adds the sign flags to the cobra command.
func (o *SignOptions) AddFlags(cmd *cobra.Command) {
	o.PassphraseFlags.AddFlags(cmd)

	cmd.Flags().StringVarP(&o.KeyPath, "key", "k", "",
		"path to the SSH private key (Ed25519, OpenSSH format)")
	_ = cmd.MarkFlagFilename("key")

	cmd.Flags().StringVarP(&o.OutputPath, "output", "o", "",
		"output file (default: input file with .signed suffix)")
	_ = cmd.MarkFlagFilename("output")
}

// ResolveKey returns the effective private key path, consulting the config
// file when the flag is empty.
func (o *SignOptions) ResolveKey(ro *RootOptions) (string, error) {
	if o.KeyPath != "" {
		return o.KeyPath, nil
	}
	if ro.Config != nil && ro.Config.Key != "" {
		return ro.Config.Key, nil
	}
	return "", fmt.Errorf("no private key: set --key or the \"key\" entry in the config file")
}
