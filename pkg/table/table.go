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
	"fmt"

	"github.com/consensys/go-tracetables/pkg/schema"
)

// Table is the in-memory store for one declared table.  Cells are held in
// per-column typed arrays which always share the same length, so a table is
// only ever observed with whole rows.  Appending goes through AppendRow,
// which validates every cell of the candidate row before any column is
// touched; hence a rejected row leaves no trace.  Tables are not
// synchronised, so concurrent mutation requires external locking.
type Table struct {
	// Flattened declaration this table was built from.
	spec schema.Table
	// Typed backing array for each declared column.
	columns []columnStore
	// Maps column names to their position.
	index map[string]int
	// Table each reference column points into, linked by the registry.
	// Entries for non-reference columns are nil.
	targets []*Table
	// Number of complete rows.
	rows uint32
	// Lifecycle phase.
	phase Phase
}

// Construct an empty table from a flattened declaration.  Reference columns
// are linked to their targets by the registry afterwards.
func newTable(spec schema.Table, pool *StringPool) *Table {
	var (
		n = len(spec.Columns)
		//
		p = &Table{
			spec:    spec,
			columns: make([]columnStore, n),
			index:   make(map[string]int, n),
			targets: make([]*Table, n),
		}
	)
	//
	for i, col := range spec.Columns {
		p.columns[i] = newColumnStore(col.Type, pool)
		p.index[col.Name] = i
	}
	//
	return p
}

// Name returns the declared name of this table.
func (p *Table) Name() string {
	return p.spec.Name
}

// Spec returns the flattened declaration this table was built from.
func (p *Table) Spec() schema.Table {
	return p.spec
}

// RowCount returns the number of complete rows currently held.
func (p *Table) RowCount() uint32 {
	return p.rows
}

// Phase returns the current lifecycle phase of this table.
func (p *Table) Phase() Phase {
	return p.phase
}

// Finalized determines whether this table has been finalized.
func (p *Table) Finalized() bool {
	return p.phase == Closed
}

// Finalize moves this table out of the ingestion phase.  Finalizing is
// idempotent, and there is no way back.
func (p *Table) Finalize() {
	p.phase = Closed
}

// Column returns a read handle onto a named column.
func (p *Table) Column(name string) (*Column, error) {
	i, ok := p.index[name]
	//
	if !ok {
		return nil, &UnknownColumnError{Table: p.spec.Name, Column: name}
	}
	//
	return &Column{table: p, index: i}, nil
}

// HasColumn determines whether this table declares a column with the given
// name.
func (p *Table) HasColumn(name string) bool {
	_, ok := p.index[name]
	return ok
}

// AppendRow validates a candidate row and, if every cell is acceptable,
// appends it to every column in lockstep, returning the index of the new
// row.  The row must give a value for every declared column, with explicit
// nulls for absent optional cells.  On any failure the table is left exactly
// as it was.  Appends are only accepted whilst the table is open.
func (p *Table) AppendRow(row map[string]Value) (uint32, error) {
	if p.phase != Open {
		return 0, &AccessDeniedError{Table: p.spec.Name, Reason: "table is finalized"}
	}
	// Reject cells for columns this table does not declare.
	for name := range row {
		if _, ok := p.index[name]; !ok {
			return 0, &UnknownColumnError{Table: p.spec.Name, Column: name}
		}
	}
	// Validate every declared cell before touching any column.
	for i, col := range p.spec.Columns {
		value, ok := row[col.Name]
		//
		if !ok {
			return 0, &MissingColumnError{Table: p.spec.Name, Column: col.Name}
		} else if err := p.checkCell(i, value); err != nil {
			return 0, err
		} else if err := p.checkAppendOrder(i, value); err != nil {
			return 0, err
		}
	}
	// Commit, knowing no column can now reject its cell.
	for i, col := range p.spec.Columns {
		p.columns[i].push(row[col.Name])
	}
	//
	p.rows++
	//
	return p.rows - 1, nil
}

// Get returns the cell at a given row of a named column.
func (p *Table) Get(column string, row uint32) (Value, error) {
	i, ok := p.index[column]
	//
	if !ok {
		return Value{}, &UnknownColumnError{Table: p.spec.Name, Column: column}
	} else if row >= p.rows {
		return Value{}, &RowOutOfRangeError{Table: p.spec.Name, Row: row, Rows: p.rows}
	}
	//
	return p.columns[i].get(row), nil
}

// Set overwrites the cell at a given row of a named column.  Updates are
// governed by the access tier of the column in the current lifecycle phase,
// and the new cell must satisfy everything an appended cell would: its type,
// reference validity and (for sorted columns) the ordering against its
// neighbours.
func (p *Table) Set(column string, row uint32, value Value) error {
	i, ok := p.index[column]
	//
	if !ok {
		return &UnknownColumnError{Table: p.spec.Name, Column: column}
	} else if row >= p.rows {
		return &RowOutOfRangeError{Table: p.spec.Name, Row: row, Rows: p.rows}
	}
	//
	col := p.spec.Columns[i]
	//
	if !CanWrite(col, p.phase) {
		return &AccessDeniedError{
			Table:  p.spec.Name,
			Column: col.Name,
			Reason: writeDenialReason(col),
		}
	} else if err := p.checkCell(i, value); err != nil {
		return err
	} else if err := p.checkSetOrder(i, row, value); err != nil {
		return err
	}
	//
	p.columns[i].set(row, value)
	//
	return nil
}

// Resolve follows the reference held at a given row of a reference column,
// returning a handle onto the row it names in the target table.  Resolution
// re-checks that the target row still exists, so a reference is validated
// both when its cell is written and again each time it is followed.
func (p *Table) Resolve(column string, row uint32) (RowRef, error) {
	i, ok := p.index[column]
	//
	if !ok {
		return RowRef{}, &UnknownColumnError{Table: p.spec.Name, Column: column}
	} else if row >= p.rows {
		return RowRef{}, &RowOutOfRangeError{Table: p.spec.Name, Row: row, Rows: p.rows}
	}
	//
	col := p.spec.Columns[i]
	//
	if !col.Type.IsReference() {
		return RowRef{}, &AccessDeniedError{
			Table:  p.spec.Name,
			Column: col.Name,
			Reason: "column is not a reference",
		}
	}
	//
	cell := p.columns[i].get(row)
	//
	if cell.IsNull() {
		return RowRef{}, &NullReferenceError{Table: p.spec.Name, Column: col.Name, Row: row}
	}
	//
	var (
		target = p.targets[i]
		index  = cell.AsUint32()
	)
	//
	if index >= target.rows {
		return RowRef{}, &DanglingReferenceError{
			Table:  p.spec.Name,
			Column: col.Name,
			Target: target.spec.Name,
			Row:    index,
			Rows:   target.rows,
		}
	}
	//
	return RowRef{Table: target, Row: index}, nil
}

// Check a single cell against its column declaration: nullability, primitive
// kind and (for references) that the named row exists in the target right
// now.
func (p *Table) checkCell(index int, value Value) error {
	col := p.spec.Columns[index]
	//
	if value.IsNull() {
		if !col.Type.Nullable() {
			return &TypeMismatchError{
				Table:    p.spec.Name,
				Column:   col.Name,
				Expected: col.Type.String(),
				Actual:   "null",
			}
		}
		// Nulls need no further checks.
		return nil
	} else if !value.matches(col.Type.Kind()) {
		return &TypeMismatchError{
			Table:    p.spec.Name,
			Column:   col.Name,
			Expected: col.Type.String(),
			Actual:   value.kindName(),
		}
	}
	// References must name an existing row of the target.
	if col.Type.IsReference() {
		var (
			target = p.targets[index]
			row    = value.AsUint32()
		)
		//
		if target == nil {
			panic(fmt.Sprintf("unlinked reference column %s.%s", p.spec.Name, col.Name))
		}
		//
		if row >= target.rows {
			return &DanglingReferenceError{
				Table:  p.spec.Name,
				Column: col.Name,
				Target: target.spec.Name,
				Row:    row,
				Rows:   target.rows,
			}
		}
	}
	//
	return nil
}

// Check an appended cell keeps a sorted column in ascending order, meaning
// it is >= the cell currently at the tail.
func (p *Table) checkAppendOrder(index int, value Value) error {
	col := p.spec.Columns[index]
	//
	if !col.Sorted() || p.rows == 0 {
		return nil
	}
	//
	last := p.columns[index].get(p.rows - 1)
	//
	if value.Cmp(last) < 0 {
		return &OutOfOrderError{Table: p.spec.Name, Column: col.Name, Value: value, Bound: last}
	}
	//
	return nil
}

// Check an updated cell keeps a sorted column in ascending order, meaning it
// still sits between its neighbours.
func (p *Table) checkSetOrder(index int, row uint32, value Value) error {
	col := p.spec.Columns[index]
	//
	if !col.Sorted() {
		return nil
	}
	//
	if row > 0 {
		prev := p.columns[index].get(row - 1)
		//
		if value.Cmp(prev) < 0 {
			return &OutOfOrderError{Table: p.spec.Name, Column: col.Name, Value: value, Bound: prev}
		}
	}
	//
	if row+1 < p.rows {
		next := p.columns[index].get(row + 1)
		//
		if value.Cmp(next) > 0 {
			return &OutOfOrderError{Table: p.spec.Name, Column: col.Name, Value: value, Bound: next}
		}
	}
	//
	return nil
}

// Determine the reason an in-place update was denied, for error reporting.
func writeDenialReason(col schema.Column) string {
	if col.Access != schema.LowPerfWrite {
		return "column is read-only"
	}
	// Remaining case is a post-finalization column still in the open phase.
	return "column is writable only after finalization"
}
