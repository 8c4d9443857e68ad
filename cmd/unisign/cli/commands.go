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

// Package cli assembles the unisign command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	cobracompletefig "github.com/withfig/autocomplete-tools/integrations/cobra"
	"sigs.k8s.io/release-utils/version"

	"github.com/oreparaz/unisign/cmd/unisign/cli/options"
)

var (
	ro = &options.RootOptions{}
)

// New builds the root command with all subcommands attached.
func New() *cobra.Command {
	var (
		out, stdout *os.File
	)

	cmd := &cobra.Command{
		Use:   "unisign",
		Short: "Sign and verify single-file artifacts in place.",
		Long: `unisign embeds Ed25519 signatures inside the artifacts they sign.

    An artifact carries a fixed-size placeholder (injected into a binary
    note section, PDF object, or ZIP comment). Signing replaces the
    placeholder with the encoded signature without changing the file size,
    so binaries stay runnable and documents stay readable.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := ro.LoadConfig(); err != nil {
				return err
			}

			if ro.OutputFile != "" {
				var err error
				out, err = os.Create(ro.OutputFile)
				if err != nil {
					return fmt.Errorf("error creating output file %s: %w", ro.OutputFile, err)
				}
				stdout = os.Stdout
				os.Stdout = out
				cmd.SetOut(out)
			}

			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if out != nil {
				_ = out.Close()
				os.Stdout = stdout
			}
		},
	}
	ro.AddFlags(cmd)

	// Add sub-commands.
	cmd.AddCommand(Sign())
	cmd.AddCommand(Verify())
	cmd.AddCommand(Inject())
	cmd.AddCommand(Inspect())
	cmd.AddCommand(Keygen())
	cmd.AddCommand(version.WithFont("starwars"))
	cmd.AddCommand(cobracompletefig.CreateCompletionSpecCommand())
	return cmd
}
