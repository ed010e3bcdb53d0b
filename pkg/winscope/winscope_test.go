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
package winscope

import (
	"testing"

	"github.com/consensys/go-tracetables/pkg/table"
)

func Test_Winscope_01(t *testing.T) {
	tables := newTables(t)
	// The catalog carries all seventeen tables
	if n := len(tables.Registry().Tables()); n != 17 {
		t.Errorf("expected 17 tables, got %d", n)
	}
	// Spot check the typed handles against their table names
	checks := map[string]*table.Table{
		"protolog":                               tables.ProtoLog,
		"__intrinsic_inputmethod_clients":        tables.InputMethodClients,
		"surfaceflinger_layers_snapshot":         tables.SurfaceFlingerLayersSnapshot,
		"surfaceflinger_layer":                   tables.SurfaceFlingerLayer,
		"__intrinsic_surfaceflinger_transaction": tables.SurfaceFlingerTransaction,
		"__intrinsic_viewcapture_interned_data":  tables.ViewCaptureInternedData,
		"window_manager_shell_transitions":       tables.WindowManagerShellTransitions,
		"__intrinsic_windowmanager":              tables.WindowManager,
	}
	//
	for name, handle := range checks {
		if handle == nil {
			t.Errorf("expected handle for %s", name)
		} else if handle.Name() != name {
			t.Errorf("expected handle for %s, got %s", name, handle.Name())
		}
	}
}

func Test_Winscope_02(t *testing.T) {
	tables := newTables(t)
	// The windowmanager table resolves under its view alias
	alias, err := tables.Registry().Table("windowmanager")
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if alias != tables.WindowManager {
		t.Error("expected view alias to resolve to the windowmanager table")
	}
}

func Test_Winscope_03(t *testing.T) {
	tables := newTables(t)
	//
	mustAppendLog(t, tables, ProtoLogRow{Ts: 100, Level: "DEBUG", Tag: "WindowManager",
		Message: "visible=true", Location: "wm/Session.java:123"})
	mustAppendLog(t, tables, ProtoLogRow{Ts: 200, Level: "INFO", Tag: "InputMethod",
		Message: "shown", Location: "ime/Ime.java:45"})
	// Timestamps must not regress
	if _, err := tables.AppendProtoLog(ProtoLogRow{Ts: 150, Level: "WARN"}); err == nil {
		t.Error("expected out-of-order error")
	} else if _, ok := err.(*table.OutOfOrderError); !ok {
		t.Errorf("expected out-of-order error, got %v", err)
	}
	//
	if tables.ProtoLog.RowCount() != 2 {
		t.Errorf("expected 2 rows, got %d", tables.ProtoLog.RowCount())
	}
}

func Test_Winscope_04(t *testing.T) {
	tables := newTables(t)
	//
	snapshotId, err := tables.AppendSurfaceFlingerLayersSnapshot(SnapshotRow{Ts: 10})
	//
	if err != nil {
		t.Fatal(err)
	}
	// Layers must point at an existing snapshot
	if _, err := tables.AppendSurfaceFlingerLayer(SurfaceFlingerLayerRow{SnapshotId: 7}); err == nil {
		t.Error("expected dangling reference error")
	} else if _, ok := err.(*table.DanglingReferenceError); !ok {
		t.Errorf("expected dangling reference error, got %v", err)
	}
	//
	if _, err := tables.AppendSurfaceFlingerLayer(SurfaceFlingerLayerRow{SnapshotId: snapshotId}); err != nil {
		t.Fatal(err)
	}
	// And the reference resolves back onto the snapshot
	ref, err := tables.SurfaceFlingerLayer.Resolve("snapshot_id", 0)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if ref.Table != tables.SurfaceFlingerLayersSnapshot || ref.Row != snapshotId {
		t.Errorf("expected snapshot %d, got %s[%d]", snapshotId, ref.Table.Name(), ref.Row)
	}
}

func Test_Winscope_05(t *testing.T) {
	var (
		tables = newTables(t)
		argSet = uint32(42)
	)
	//
	if _, err := tables.AppendInputMethodClients(SnapshotRow{Ts: 1, ArgSetId: &argSet}); err != nil {
		t.Fatal(err)
	}
	// Present optionals hold their value
	checkWinscopeCell(t, tables.InputMethodClients, "arg_set_id", 0, table.Uint32(42))
	// Absent optionals hold null
	checkWinscopeCell(t, tables.InputMethodClients, "base64_proto_id", 0, table.Null())
}

func Test_Winscope_06(t *testing.T) {
	tables := newTables(t)
	//
	if _, err := tables.AppendInputMethodClients(SnapshotRow{Ts: 1}); err != nil {
		t.Fatal(err)
	}
	// Raw proto ids are only writable once the trace is complete
	err := tables.InputMethodClients.Set("base64_proto_id", 0, table.Uint32(99))
	//
	if err == nil {
		t.Error("expected access denied error")
	} else if _, ok := err.(*table.AccessDeniedError); !ok {
		t.Errorf("expected access denied error, got %v", err)
	}
	//
	tables.Finalize()
	//
	if err := tables.InputMethodClients.Set("base64_proto_id", 0, table.Uint32(99)); err != nil {
		t.Fatal(err)
	}
	//
	checkWinscopeCell(t, tables.InputMethodClients, "base64_proto_id", 0, table.Uint32(99))
}

func Test_Winscope_07(t *testing.T) {
	tables := newTables(t)
	// Loading order must place every table before those referencing it
	position := make(map[string]int)
	//
	for i, tbl := range tables.Registry().DependencyOrder() {
		position[tbl.Name()] = i
	}
	//
	pairs := [][2]string{
		{"surfaceflinger_layers_snapshot", "surfaceflinger_layer"},
		{"surfaceflinger_transactions", "__intrinsic_surfaceflinger_transaction"},
		{"__intrinsic_viewcapture", "__intrinsic_viewcapture_view"},
	}
	//
	for _, pair := range pairs {
		if position[pair[0]] > position[pair[1]] {
			t.Errorf("expected %s to load before %s", pair[0], pair[1])
		}
	}
}

func Test_Winscope_08(t *testing.T) {
	tables := newTables(t)
	// Shell transitions are ordered by transition id, not by timestamp
	rows := []WindowManagerShellTransitionsRow{
		{Ts: 500, TransitionId: 1},
		{Ts: 100, TransitionId: 2},
	}
	//
	for _, row := range rows {
		if _, err := tables.AppendWindowManagerShellTransitions(row); err != nil {
			t.Fatal(err)
		}
	}
	// Regressing transition ids are rejected
	if _, err := tables.AppendWindowManagerShellTransitions(WindowManagerShellTransitionsRow{
		Ts: 900, TransitionId: 1,
	}); err == nil {
		t.Error("expected out-of-order error")
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func newTables(t *testing.T) *Tables {
	tables, err := NewTables()
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return tables
}

func mustAppendLog(t *testing.T, tables *Tables, row ProtoLogRow) {
	if _, err := tables.AppendProtoLog(row); err != nil {
		t.Fatal(err)
	}
}

func checkWinscopeCell(t *testing.T, tbl *table.Table, column string, row uint32, expected table.Value) {
	actual, err := tbl.Get(column, row)
	//
	if err != nil {
		t.Fatal(err)
	} else if actual != expected {
		t.Errorf("cell %s[%d]: expected %s, got %s", column, row, expected, actual)
	}
}
