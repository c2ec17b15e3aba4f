// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package strategies implements the zonmatch strategies command.
package strategies

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gatudata/zonmatch/cmd/zonmatch/cli"
	"github.com/gatudata/zonmatch/index"
)

func init() {
	cli.RootCmd.AddCommand(strategiesCmd)
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the available indexing strategies",
	Long:  "List the available indexing strategies",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		fmt.Fprintln(w, "NAME\tCLASS")

		for _, s := range index.Strategies() {
			class := "approximate"
			if s.Exact() {
				class = "exact"
			}

			fmt.Fprintf(w, "%s\t%s\n", s, class)
		}

		w.Flush()
	},
}
