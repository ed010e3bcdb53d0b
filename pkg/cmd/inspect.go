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
	"strings"

	"github.com/consensys/go-tracetables/pkg/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// inspectCmd represents the inspect command for reporting table files.
var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] table_file",
	Short: "Inspect a table file",
	Long: `Report the tables held in a table file, or (with --table)
	the declaration and leading rows of one table.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Parse table file
		registry := readRegistryFile(args[0])
		//
		if name := GetString(cmd, "table"); name != "" {
			inspectTable(registry, name, GetUint(cmd, "rows"))
		} else {
			inspectSummary(args[0], registry)
		}
	},
}

// Report a one-line summary of every table in the registry.
func inspectSummary(filename string, registry *table.Registry) {
	var (
		width     = terminalWidth()
		tables    = registry.Tables()
		nameWidth = 0
		rows      int64
	)
	//
	for _, t := range tables {
		rows += int64(t.RowCount())
		nameWidth = max(nameWidth, len(t.Name()))
	}
	//
	if info, err := os.Stat(filename); err == nil {
		fmt.Printf("%s: %s, %d tables, %s rows\n", filename,
			humanize.Bytes(uint64(info.Size())), len(tables), humanize.Comma(rows))
	}
	//
	for _, t := range tables {
		var (
			spec  = t.Spec()
			notes []string
		)
		//
		for _, col := range spec.Columns {
			if col.Sorted() {
				notes = append(notes, fmt.Sprintf("sorted(%s)", col.Name))
			}
			//
			if col.Type.IsReference() {
				notes = append(notes, fmt.Sprintf("refs(%s)", col.Type.Target()))
			}
		}
		//
		line := fmt.Sprintf("%-*s %10s rows %2d columns %-6s %s", nameWidth, t.Name(),
			humanize.Comma(int64(t.RowCount())), len(spec.Columns), t.Phase(),
			strings.Join(notes, " "))
		//
		fmt.Println(truncateLine(line, width))
	}
}

// Report the declaration of one table, followed by its leading rows.
func inspectTable(registry *table.Registry, name string, n uint) {
	t, err := registry.Table(name)
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	var (
		spec  = t.Spec()
		width = terminalWidth()
	)
	//
	fmt.Printf("table %s (%s rows, %s)\n", t.Name(),
		humanize.Comma(int64(t.RowCount())), t.Phase())
	//
	if spec.View != "" {
		fmt.Printf("view %s\n", spec.View)
	}
	// Report column declarations
	for _, col := range spec.Columns {
		attrs := fmt.Sprintf(" %s", col.Access)
		//
		if col.Sorted() {
			attrs = " sorted" + attrs
		}
		//
		fmt.Printf("  %s %s%s\n", col.Name, col.Type.String(), attrs)
	}
	// Report leading rows
	iter := t.Rows()
	//
	for i := uint(0); i < n && iter.HasNext(); i++ {
		var (
			row   = iter.Next()
			cells = make([]string, len(spec.Columns))
		)
		//
		for j, col := range spec.Columns {
			// Row index is in range, hence this cannot fail.
			cell, _ := row.Get(col.Name)
			cells[j] = cell.String()
		}
		//
		line := fmt.Sprintf("%6d | %s", row.Index(), strings.Join(cells, " "))
		fmt.Println(truncateLine(line, width))
	}
	//
	if remainder := iter.Count(); remainder > 0 {
		fmt.Printf("... %s more rows\n", humanize.Comma(int64(remainder)))
	}
}

// Determine the width of the enclosing terminal, falling back to a fixed
// width when stdout is not a terminal.
func terminalWidth() int {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			return width
		}
	}
	//
	return 80
}

func truncateLine(line string, width int) string {
	if len(line) > width {
		return line[0:width]
	}
	//
	return line
}

//nolint:errcheck
func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("table", "t", "", "report a single table by name (or view alias)")
	inspectCmd.Flags().UintP("rows", "n", 10, "number of leading rows to report")
}
