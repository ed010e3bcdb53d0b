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

// Row is a handle onto one row of a table.  A row handle is just a (table,
// index) pair; it holds no cell data of its own.
type Row struct {
	table *Table
	index uint32
}

// Index returns the position of this row in its table.
func (p Row) Index() uint32 {
	return p.index
}

// Table returns the table this row belongs to.
func (p Row) Table() *Table {
	return p.table
}

// Get returns the cell this row holds in a named column.
func (p Row) Get(column string) (Value, error) {
	return p.table.Get(column, p.index)
}

// Cells materialises this row as a map from column names to cell values,
// covering every declared column.
func (p Row) Cells() map[string]Value {
	cells := make(map[string]Value, len(p.table.spec.Columns))
	//
	for i, col := range p.table.spec.Columns {
		cells[col.Name] = p.table.columns[i].get(p.index)
	}
	//
	return cells
}

// RowRef is a resolved reference: a handle onto a row of the table a
// reference column points into.
type RowRef struct {
	// Table the reference resolved into.
	Table *Table
	// Row index within that table.
	Row uint32
}

// Get returns the cell the referenced row holds in a named column of the
// target table.
func (p RowRef) Get(column string) (Value, error) {
	return p.Table.Get(column, p.Row)
}

// RowIterator walks the rows of a table in index order.  The row count is
// captured when the iterator is created, so rows appended during iteration
// are not visited.
type RowIterator struct {
	table *Table
	index uint32
	count uint32
}

// Rows returns an iterator over the rows this table held at the point of
// the call.
func (p *Table) Rows() *RowIterator {
	return &RowIterator{table: p, count: p.rows}
}

// HasNext checks whether any rows remain.
func (p *RowIterator) HasNext() bool {
	return p.index < p.count
}

// Next returns the next row, and advances the iterator.
func (p *RowIterator) Next() Row {
	row := Row{table: p.table, index: p.index}
	p.index++
	//
	return row
}

// Count returns the number of rows left.  This does not modify the iterator.
func (p *RowIterator) Count() uint32 {
	return p.count - p.index
}

// Clone creates a copy of this iterator at the current cursor position.
// Advancing the clone does not advance the original.
func (p *RowIterator) Clone() *RowIterator {
	return &RowIterator{table: p.table, index: p.index, count: p.count}
}

// Collect allocates a new array containing all remaining rows.  This drains
// the iterator.
func (p *RowIterator) Collect() []Row {
	rows := make([]Row, 0, p.Count())
	//
	for p.HasNext() {
		rows = append(rows, p.Next())
	}
	//
	return rows
}
