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
package table

import (
	"testing"

	"github.com/consensys/go-tracetables/pkg/schema"
)

func Test_Reference_01(t *testing.T) {
	snapshot, layer := newSnapshotTables(t)
	//
	mustAppend(t, snapshot, map[string]Value{"ts": Int64(10)})
	mustAppend(t, snapshot, map[string]Value{"ts": Int64(20)})
	mustAppend(t, layer, layerRow(1, "status_bar"))
	// Resolving a valid reference lands on the named target row
	ref, err := layer.Resolve("snapshot_id", 0)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	if ref.Table != snapshot || ref.Row != 1 {
		t.Errorf("expected snapshot[1], got %s[%d]", ref.Table.Name(), ref.Row)
	}
	// Cells of the target row are reachable through the reference
	if cell, err := ref.Get("ts"); err != nil {
		t.Fatal(err)
	} else if cell != Int64(20) {
		t.Errorf("expected ts 20, got %s", cell)
	}
}

func Test_Reference_02(t *testing.T) {
	snapshot, layer := newSnapshotTables(t)
	//
	mustAppend(t, snapshot, map[string]Value{"ts": Int64(10)})
	// References naming absent target rows are rejected on append
	if _, err := layer.AppendRow(layerRow(1, "status_bar")); err == nil {
		t.Error("expected dangling reference error")
	} else if _, ok := err.(*DanglingReferenceError); !ok {
		t.Errorf("expected dangling reference error, got %v", err)
	}
	//
	if layer.RowCount() != 0 {
		t.Errorf("rejected append changed row count to %d", layer.RowCount())
	}
}

func Test_Reference_03(t *testing.T) {
	registry := mustNewRegistry(t,
		schema.Table{
			Name:    "snapshot",
			Columns: []schema.Column{{Name: "ts", Type: schema.Int64()}},
		},
		schema.Table{
			Name: "extra",
			Columns: []schema.Column{
				{Name: "parent", Type: schema.Optional(schema.TableId("snapshot"))},
			},
		})
	//
	extra := mustTable(t, registry, "extra")
	// Optional references accept null
	mustAppend(t, extra, map[string]Value{"parent": Null()})
	// But a null reference names no row, hence cannot be resolved
	if _, err := extra.Resolve("parent", 0); err == nil {
		t.Error("expected null reference error")
	} else if _, ok := err.(*NullReferenceError); !ok {
		t.Errorf("expected null reference error, got %v", err)
	}
}

func Test_Reference_04(t *testing.T) {
	snapshot, _ := newSnapshotTables(t)
	//
	mustAppend(t, snapshot, map[string]Value{"ts": Int64(10)})
	// Only reference columns can be resolved
	if _, err := snapshot.Resolve("ts", 0); err == nil {
		t.Error("expected access denied error")
	} else if _, ok := err.(*AccessDeniedError); !ok {
		t.Errorf("expected access denied error, got %v", err)
	}
}

func Test_Reference_05(t *testing.T) {
	registry := mustNewRegistry(t, schema.Table{
		Name: "tree",
		Columns: []schema.Column{
			{Name: "parent", Type: schema.Optional(schema.TableId("tree"))},
		},
	})
	//
	tree := mustTable(t, registry, "tree")
	// Roots carry a null parent
	mustAppend(t, tree, map[string]Value{"parent": Null()})
	// Children may point at any earlier row
	mustAppend(t, tree, map[string]Value{"parent": Uint32(0)})
	// But a row cannot point at itself, since it does not exist until the
	// append commits.
	if _, err := tree.AppendRow(map[string]Value{"parent": Uint32(2)}); err == nil {
		t.Error("expected dangling reference error")
	} else if _, ok := err.(*DanglingReferenceError); !ok {
		t.Errorf("expected dangling reference error, got %v", err)
	}
}

func Test_Reference_06(t *testing.T) {
	// Declaration order does not constrain reference targets, hence a table
	// may reference one declared after it.
	registry := mustNewRegistry(t,
		schema.Table{
			Name: "layer",
			Columns: []schema.Column{
				{Name: "snapshot_id", Type: schema.TableId("snapshot")},
			},
		},
		schema.Table{
			Name:    "snapshot",
			Columns: []schema.Column{{Name: "ts", Type: schema.Int64()}},
		})
	//
	snapshot := mustTable(t, registry, "snapshot")
	layer := mustTable(t, registry, "layer")
	//
	mustAppend(t, snapshot, map[string]Value{"ts": Int64(10)})
	mustAppend(t, layer, map[string]Value{"snapshot_id": Uint32(0)})
}

// ===================================================================
// Test Helpers
// ===================================================================

// Construct a fresh registry holding a snapshot table and a layer table
// referencing it.
func newSnapshotTables(t *testing.T) (*Table, *Table) {
	registry := mustNewRegistry(t,
		schema.Table{
			Name: "snapshot",
			Columns: []schema.Column{
				{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			},
		},
		schema.Table{
			Name: "layer",
			Columns: []schema.Column{
				{Name: "snapshot_id", Type: schema.TableId("snapshot")},
				{Name: "name", Type: schema.String()},
			},
		})
	//
	return mustTable(t, registry, "snapshot"), mustTable(t, registry, "layer")
}

func layerRow(snapshotId uint32, name string) map[string]Value {
	return map[string]Value{
		"snapshot_id": Uint32(snapshotId),
		"name":        String(name),
	}
}
