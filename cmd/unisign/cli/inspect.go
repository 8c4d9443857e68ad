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
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/oreparaz/unisign/cmd/unisign/cli/options"
	"github.com/oreparaz/unisign/pkg/inspect"
)

func Inspect() *cobra.Command {
	o := &options.InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect [OPTIONS] FILE",
		Short: "Report the signing state of an artifact.",
		Long: `Report the signing state of an artifact.

    Shows the detected format, whether the artifact carries a placeholder
    or a signature and at which offset, and the content digests. Nothing
    is verified; use "unisign verify" for that.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inspector, err := inspect.NewInspector(inspect.InspectorOptions{
				InputPath: args[0],
				Logger:    ro.NewLogger(),
			})
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), ro.Timeout)
			defer cancel()

			report, err := inspector.Inspect(ctx)
			if err != nil {
				return err
			}

			if o.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			cmd.Println(report.String())
			return nil
		},
	}

	options.AddAllFlags(cmd, o)
	return cmd
}
