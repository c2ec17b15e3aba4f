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

// Package cli holds the root command and shared terminal helpers of the
// zonmatch tool.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd is the root of the zonmatch command tree.  Subcommands
// register themselves in their package init functions.
var RootCmd = &cobra.Command{
	Use:   "zonmatch",
	Short: "Correlate addresses with parking restriction zones",
	Long: `zonmatch matches a batch of address points against environmental
cleaning zones and paid-parking zones, finding for each address the
nearest zone segment within a distance cutoff per dataset.`,
}
