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
	"github.com/oreparaz/unisign/internal/format"
	"github.com/oreparaz/unisign/pkg/magic"
)

func Inject() *cobra.Command {
	o := &options.InjectOptions{}

	cmd := &cobra.Command{
		Use:   "inject [OPTIONS] FILE",
		Short: "Inject the signing placeholder into an artifact.",
		Long: `Inject the signing placeholder into an artifact.

    The placeholder is embedded using the artifact's native metadata
    mechanism, so the artifact keeps working exactly as before:

      ELF      new .note.unisign section, not part of any loadable segment
      Mach-O   new __NOTE,__unisign section with no VM mapping
      PDF      incremental update appending a string object
      ZIP      archive comment

    Source code built with unisign support (see pkg/placeholder and
    example/c/hello.c) carries the placeholder already and does not need
    this command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := ro.NewLogger()

			result, err := format.Inject(format.InjectOptions{
				InputPath:   args[0],
				OutputPath:  o.OutputPath,
				Placeholder: magic.Placeholder,
				SectionName: o.ResolveSection(ro),
			})
			if err != nil {
				return err
			}

			log.Info("injected placeholder into %s artifact", result.Format)
			cmd.Println(result.OutputPath)
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
