// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// convertCmd represents the convert command for moving table data between
// file formats.
var convertCmd = &cobra.Command{
	Use:   "convert [flags] table_file",
	Short: "Convert a table file between formats.",
	Long: `Convert a table file from one format (e.g. json) to another
	(e.g. tsf).  The target format is determined by the extension of the
	output filename.  Observe that JSON files carry row data only, hence
	converting one loads its rows against the built-in winscope
	declarations.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		output := GetString(cmd, "output")
		// Parse table file
		registry := readRegistryFile(args[0])
		// Write out in the target format
		writeRegistryFile(registry, output)
	},
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("output", "o", "", "specify output file.")
	convertCmd.MarkFlagRequired("output")
}
