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

package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oreparaz/unisign/cmd/unisign/cli/options"
	"github.com/oreparaz/unisign/pkg/verify"
)

func Verify() *cobra.Command {
	o := &options.VerifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify [OPTIONS] FILE",
		Short: "Verify the embedded signature of an artifact.",
		Long: `Verify the embedded signature of an artifact.

    The signature is located inside the artifact by its prefix, the
    placeholder is restored into an in-memory copy, and the signature is
    checked against the given SSH public key. A valid signature proves the
    artifact is byte-identical to the one that was signed.

    Exits non-zero when the signature is missing, malformed, or invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, err := o.ResolveKey(ro)
			if err != nil {
				return err
			}

			verifier, err := verify.NewVerifier(verify.VerifierOptions{
				InputPath:     args[0],
				PublicKeyPath: keyPath,
				Logger:        ro.NewLogger(),
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			result, err := verifier.Verify(ctx)
			if err != nil {
				color.New(color.FgRed, color.Bold).Fprintln(cmd.ErrOrStderr(), "verification FAILED")
				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "OK: %s\n", result.Message)
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
