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

// Package options defines the command-line options and flags for the
// unisign CLI.
package options

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// FlagAdder is implemented by any flag group that can register itself to a
// cobra command.
type FlagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// AddAllFlags registers multiple flag groups at once.
func AddAllFlags(cmd *cobra.Command, flagGroups ...FlagAdder) {
	for _, fg := range flagGroups {
		fg.AddFlags(cmd)
	}
}

// PassphraseFlags control how commands that unlock or create private keys
// obtain the passphrase.
type PassphraseFlags struct {
	// Passphrase is the key passphrase given directly on the command line.
	Passphrase string
	// PromptPassphrase requests an interactive prompt instead, keeping the
	// passphrase out of shell history and the process table.
	PromptPassphrase bool
}

// AddFlags adds the passphrase flags to the cobra command.
func (o *PassphraseFlags) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Passphrase, "passphrase", "",
		"passphrase for the private key, if any")
	cmd.Flags().BoolVar(&o.PromptPassphrase, "prompt-passphrase", false,
		"read the passphrase from an interactive prompt instead of a flag")
	cmd.MarkFlagsMutuallyExclusive("passphrase", "prompt-passphrase")
}

// Resolve returns the effective passphrase, prompting on the terminal when
// requested.
func (o *PassphraseFlags) Resolve() (string, error) {
	if !o.PromptPassphrase {
		return o.Passphrase, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("--prompt-passphrase requires an interactive terminal")
	}

	fmt.Fprint(os.Stderr, "Enter passphrase: ")
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(passphrase), nil
}
