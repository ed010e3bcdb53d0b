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
package schema

import (
	"testing"
)

func Test_Compile_01(t *testing.T) {
	check_CompileOk(t,
		Table{
			Name: "snapshot",
			Columns: []Column{
				{Name: "ts", Type: Int64(), Flags: Sorted},
				{Name: "arg_set_id", Type: Optional(Uint32()), Access: LowPerfWrite},
			},
		},
		Table{
			Name: "layer",
			Columns: []Column{
				{Name: "snapshot_id", Type: TableId("snapshot")},
				{Name: "name", Type: String()},
			},
		})
}

func Test_Compile_02(t *testing.T) {
	// Tables must be named
	check_CompileErrs(t, 1, Table{
		Columns: []Column{{Name: "x", Type: Int64()}},
	})
}

func Test_Compile_03(t *testing.T) {
	// Table names must be unique within the batch
	check_CompileErrs(t, 1,
		Table{Name: "dup", Columns: []Column{{Name: "x", Type: Int64()}}},
		Table{Name: "dup", Columns: []Column{{Name: "x", Type: Int64()}}},
	)
}

func Test_Compile_04(t *testing.T) {
	// View aliases share the table namespace
	check_CompileErrs(t, 1,
		Table{Name: "a", Columns: []Column{{Name: "x", Type: Int64()}}},
		Table{Name: "b", View: "a", Columns: []Column{{Name: "x", Type: Int64()}}},
	)
}

func Test_Compile_05(t *testing.T) {
	// View aliases must themselves be unique
	check_CompileErrs(t, 1,
		Table{Name: "a", View: "shared", Columns: []Column{{Name: "x", Type: Int64()}}},
		Table{Name: "b", View: "shared", Columns: []Column{{Name: "x", Type: Int64()}}},
	)
}

func Test_Compile_06(t *testing.T) {
	// Column names must be unique within a table
	check_CompileErrs(t, 1, Table{
		Name: "t",
		Columns: []Column{
			{Name: "x", Type: Int64()},
			{Name: "x", Type: String()},
		},
	})
}

func Test_Compile_07(t *testing.T) {
	// Columns must be named
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Columns: []Column{{Type: Int64()}},
	})
}

func Test_Compile_08(t *testing.T) {
	// Sorted columns must be numeric, non-optional and not references
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Columns: []Column{{Name: "s", Type: String(), Flags: Sorted}},
	})
	//
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Columns: []Column{{Name: "x", Type: Optional(Int64()), Flags: Sorted}},
	})
	//
	check_CompileErrs(t, 1, Table{
		Name: "t",
		Columns: []Column{
			{Name: "r", Type: TableId("t"), Flags: Sorted},
		},
	})
}

func Test_Compile_09(t *testing.T) {
	// Reference targets must be declared in the batch
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Columns: []Column{{Name: "r", Type: TableId("nonesuch")}},
	})
}

func Test_Compile_10(t *testing.T) {
	tables, errs := Compile([]Table{
		{
			Name:    "base",
			Columns: []Column{{Name: "ts", Type: Int64()}},
		},
		{
			Name:    "derived",
			Extends: "base",
			Columns: []Column{{Name: "extra", Type: String()}},
		},
	})
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	// Inherited columns precede declared ones
	derived := tables[1]
	//
	if len(derived.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(derived.Columns))
	}
	//
	if derived.Columns[0].Name != "ts" || derived.Columns[1].Name != "extra" {
		t.Errorf("unexpected column order %v", derived.Columns)
	}
	// Extension link is consumed by flattening
	if derived.Extends != "" {
		t.Errorf("expected extension link cleared, got %q", derived.Extends)
	}
	// Parent itself is unchanged
	if len(tables[0].Columns) != 1 {
		t.Errorf("expected base to keep 1 column, got %d", len(tables[0].Columns))
	}
}

func Test_Compile_11(t *testing.T) {
	// Extension parents must be declared in the batch
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Extends: "nonesuch",
		Columns: []Column{{Name: "x", Type: Int64()}},
	})
}

func Test_Compile_12(t *testing.T) {
	// Extension chains must be acyclic
	_, errs := Compile([]Table{
		{Name: "a", Extends: "b", Columns: []Column{{Name: "x", Type: Int64()}}},
		{Name: "b", Extends: "a", Columns: []Column{{Name: "y", Type: Int64()}}},
	})
	//
	if len(errs) == 0 {
		t.Error("expected cyclic extension error")
	}
}

func Test_Compile_13(t *testing.T) {
	// Documentation keys naming no declared column are reported as a
	// warning, never an error.
	check_CompileOk(t, Table{
		Name:    "t",
		Columns: []Column{{Name: "x", Type: Int64()}},
		Doc: Doc{
			Table:   "Some table.",
			Columns: map[string]string{"x": "A column.", "": "A phantom column."},
		},
	})
}

func Test_Compile_14(t *testing.T) {
	// Access classes and durations outside their declared ranges are
	// rejected.
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Columns: []Column{{Name: "x", Type: Int64(), Access: Access(99)}},
	})
	//
	check_CompileErrs(t, 1, Table{
		Name:    "t",
		Columns: []Column{{Name: "x", Type: Int64(), Duration: Duration(99)}},
	})
}

func Test_Compile_15(t *testing.T) {
	// Every problem in the batch is reported, not just the first
	check_CompileErrs(t, 3,
		Table{Name: "dup", Columns: []Column{{Name: "x", Type: Int64()}}},
		Table{Name: "dup", Columns: []Column{{Name: "x", Type: Int64()}}},
		Table{Name: "t", Columns: []Column{
			{Name: "r", Type: TableId("nonesuch")},
			{Name: "s", Type: String(), Flags: Sorted},
		}},
	)
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_CompileOk(t *testing.T, tables ...Table) []Table {
	flattened, errs := Compile(tables)
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	//
	return flattened
}

func check_CompileErrs(t *testing.T, n int, tables ...Table) {
	_, errs := Compile(tables)
	//
	if len(errs) != n {
		t.Errorf("expected %d errors, got %v", n, errs)
	}
}
