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

// VerifyOptions defines flags for the verify command.
type VerifyOptions struct {
	// PublicKeyPath is the SSH public key in authorized_keys format. Falls
	// back to the config file when the flag is not set.
	PublicKeyPath string
}

var _ FlagAdder = (*VerifyOptions)(nil)

// AddFlags adds the verify flags to the cobra command.
func (o *VerifyOptions) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.PublicKeyPath, "key", "k", "",
		"path to the SSH public key (authorized_keys format)")
	_ = cmd.MarkFlagFilename("key")
}

// ResolveKey returns the effective public key path, consulting the config
// file when the flag is empty.
func (o *VerifyOptions) ResolveKey(ro *RootOptions) (string, error) {
	if o.PublicKeyPath != "" {
		return o.PublicKeyPath, nil
	}
	if ro.Config != nil && ro.Config.PublicKey != "" {
		return ro.Config.PublicKey, nil
	}
	return "", fmt.Errorf("no public key: set --key or the \"public-key\" entry in the config file")
}
