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
	"github.com/spf13/cobra"

	"github.com/oreparaz/unisign/cmd/unisign/cli/options"
	"github.com/oreparaz/unisign/pkg/signing"
)

func Keygen() *cobra.Command {
	o := &options.KeygenOptions{}

	cmd := &cobra.Command{
		Use:   "keygen [OPTIONS] KEY_PATH",
		Short: "Generate an Ed25519 keypair in OpenSSH format.",
		Long: `Generate an Ed25519 keypair in OpenSSH format.

    The private key is written to KEY_PATH with mode 0600 and the public
    key next to it with a .pub suffix. Keys generated with ssh-keygen
    work just as well; this command only saves a tool switch.

    Existing files are never overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := o.Resolve()
			if err != nil {
				return err
			}

			pubPath, err := signing.GenerateKeypair(signing.KeygenOptions{
				PrivateKeyPath: args[0],
				Passphrase:     passphrase,
				Comment:        o.Comment,
			})
			if err != nil {
				return err
			}

			log := ro.NewLogger()
			log.Info("private key written to %s", args[0])
			log.Info("public key written to %s", pubPath)
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
