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

// KeygenOptions defines flags for the keygen command.
type KeygenOptions struct {
	PassphraseFlags
	// Comment is embedded in the generated key files.
	Comment string
}

var _ FlagAdder = (*KeygenOptions)(nil)

// AddFlags adds the keygen flags to the cobra command.
func (o *KeygenOptions) AddFlags(cmd *cobra.Command) {
	o.PassphraseFlags.AddFlags(cmd)

	cmd.Flags().StringVarP(&o.Comment, "comment", "C", "",
		"comment for the key files (conventionally user@host)")
}
