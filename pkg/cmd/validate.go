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

	"github.com/consensys/go-tracetables/pkg/table"
	"github.com/consensys/go-tracetables/pkg/winscope"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command for checking table files.
var validateCmd = &cobra.Command{
	Use:   "validate [flags] table_file",
	Short: "Validate a table file.",
	Long: `Validate a table file by recompiling its embedded declarations and
	replaying every row through the normal append path.  With --winscope, the
	embedded declarations must additionally match the built-in winscope set.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if GetFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		// Parse table file, which itself recompiles and replays.  Any
		// failure has already terminated with an error at this point.
		registry := readRegistryFile(args[0])
		//
		if GetFlag(cmd, "winscope") {
			checkWinscopeSchema(registry)
		}
		//
		var rows int64
		//
		for _, t := range registry.Tables() {
			log.Debugf("table %s: %d rows, %s", t.Name(), t.RowCount(), t.Phase())
			//
			rows += int64(t.RowCount())
		}
		//
		fmt.Printf("ok: %d tables, %s rows\n", len(registry.Tables()), humanize.Comma(rows))
	},
}

// Check the declarations of a registry match the built-in winscope set,
// table for table in declaration order.
func checkWinscopeSchema(registry *table.Registry) {
	expected, err := winscope.NewRegistry()
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	var (
		tables         = registry.Tables()
		expectedTables = expected.Tables()
	)
	//
	if len(tables) != len(expectedTables) {
		fmt.Printf("expected %d tables, found %d\n", len(expectedTables), len(tables))
		os.Exit(2)
	}
	//
	for i, t := range tables {
		var (
			spec         = t.Spec()
			expectedSpec = expectedTables[i].Spec()
		)
		//
		if !spec.Equal(&expectedSpec) {
			fmt.Printf("table %s does not match the winscope declaration\n", spec.Name)
			os.Exit(2)
		}
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("winscope", false, "require the built-in winscope declarations")
}
