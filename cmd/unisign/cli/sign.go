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

	"github.com/spf13/cobra"

	"github.com/oreparaz/unisign/cmd/unisign/cli/options"
	"github.com/oreparaz/unisign/pkg/signing"
)

func Sign() *cobra.Command {
	o := &options.SignOptions{}

	cmd := &cobra.Command{
		Use:   "sign [OPTIONS] FILE",
		Short: "Sign an artifact in place.",
		Long: `Sign an artifact in place.

    The artifact must contain exactly one placeholder (see "unisign inject").
    The placeholder is replaced with the encoded signature; everything else,
    including the file size, stays byte-identical. The signed artifact is
    written next to the input with a .signed suffix unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyPath, err := o.ResolveKey(ro)
			if err != nil {
				return err
			}
			passphrase, err := o.Resolve()
			if err != nil {
				return err
			}

			signer, err := signing.NewSigner(signing.SignerOptions{
				InputPath:      args[0],
				OutputPath:     o.OutputPath,
				PrivateKeyPath: keyPath,
				Passphrase:     passphrase,
				Logger:         ro.NewLogger(),
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			result, err := signer.Sign(ctx)
			if err != nil {
				return err
			}

			cmd.Println(result.OutputPath)
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
