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
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-tracetables/pkg/schema"
)

// columnStore abstracts the typed backing array of one column.  Stores hold
// raw cell data only; all validation (typing, ordering, access) happens in
// the owning table before a store is touched.  Hence, stores assume every
// value passed in already matches their kind.
type columnStore interface {
	// len returns the number of cells currently stored.
	len() uint32
	// get returns the cell at a given row, or the null value if the row
	// holds null.
	get(row uint32) Value
	// push appends a validated cell.
	push(value Value)
	// set overwrites a validated cell in place.
	set(row uint32, value Value)
	// lowerBound returns the first row whose cell is >= the given value,
	// assuming cells are in ascending order.
	lowerBound(value Value) uint32
	// upperBound returns the first row whose cell is > the given value,
	// assuming cells are in ascending order.
	upperBound(value Value) uint32
}

// Construct an empty store for a column of a given type.  String columns
// intern their cells in the given pool.
func newColumnStore(t schema.Type, pool *StringPool) columnStore {
	switch t.Kind() {
	case schema.Int64Kind:
		return &intColumn{nulls: bitset.New(0)}
	case schema.Uint32Kind:
		return &uintColumn{nulls: bitset.New(0)}
	case schema.StringKind:
		return &stringColumn{pool: pool, nulls: bitset.New(0)}
	default:
		panic("unreachable")
	}
}

// ============================================================================
// int64 columns
// ============================================================================

type intColumn struct {
	data []int64
	// null mask, where a set bit marks a null cell
	nulls *bitset.BitSet
}

func (p *intColumn) len() uint32 {
	return uint32(len(p.data))
}

func (p *intColumn) get(row uint32) Value {
	if p.nulls.Test(uint(row)) {
		return Null()
	}
	//
	return Int64(p.data[row])
}

func (p *intColumn) push(value Value) {
	if value.IsNull() {
		p.nulls.Set(uint(len(p.data)))
		p.data = append(p.data, 0)
	} else {
		p.data = append(p.data, value.AsInt64())
	}
}

func (p *intColumn) set(row uint32, value Value) {
	if value.IsNull() {
		p.data[row] = 0
		p.nulls.Set(uint(row))
	} else {
		p.data[row] = value.AsInt64()
		p.nulls.Clear(uint(row))
	}
}

func (p *intColumn) lowerBound(value Value) uint32 {
	v := value.AsInt64()
	//
	return uint32(sort.Search(len(p.data), func(i int) bool { return p.data[i] >= v }))
}

func (p *intColumn) upperBound(value Value) uint32 {
	v := value.AsInt64()
	//
	return uint32(sort.Search(len(p.data), func(i int) bool { return p.data[i] > v }))
}

// ============================================================================
// uint32 columns
// ============================================================================

type uintColumn struct {
	data []uint32
	// null mask, where a set bit marks a null cell
	nulls *bitset.BitSet
}

func (p *uintColumn) len() uint32 {
	return uint32(len(p.data))
}

func (p *uintColumn) get(row uint32) Value {
	if p.nulls.Test(uint(row)) {
		return Null()
	}
	//
	return Uint32(p.data[row])
}

func (p *uintColumn) push(value Value) {
	if value.IsNull() {
		p.nulls.Set(uint(len(p.data)))
		p.data = append(p.data, 0)
	} else {
		p.data = append(p.data, value.AsUint32())
	}
}

func (p *uintColumn) set(row uint32, value Value) {
	if value.IsNull() {
		p.data[row] = 0
		p.nulls.Set(uint(row))
	} else {
		p.data[row] = value.AsUint32()
		p.nulls.Clear(uint(row))
	}
}

func (p *uintColumn) lowerBound(value Value) uint32 {
	v := value.AsUint32()
	//
	return uint32(sort.Search(len(p.data), func(i int) bool { return p.data[i] >= v }))
}

func (p *uintColumn) upperBound(value Value) uint32 {
	v := value.AsUint32()
	//
	return uint32(sort.Search(len(p.data), func(i int) bool { return p.data[i] > v }))
}

// ============================================================================
// string columns
// ============================================================================

type stringColumn struct {
	// indices into the pool, one per cell
	data []uint32
	// shared intern pool
	pool *StringPool
	// null mask, where a set bit marks a null cell
	nulls *bitset.BitSet
}

func (p *stringColumn) len() uint32 {
	return uint32(len(p.data))
}

func (p *stringColumn) get(row uint32) Value {
	if p.nulls.Test(uint(row)) {
		return Null()
	}
	//
	return String(p.pool.Get(p.data[row]))
}

func (p *stringColumn) push(value Value) {
	if value.IsNull() {
		p.nulls.Set(uint(len(p.data)))
		p.data = append(p.data, 0)
	} else {
		p.data = append(p.data, p.pool.Put(value.AsString()))
	}
}

func (p *stringColumn) set(row uint32, value Value) {
	if value.IsNull() {
		p.data[row] = 0
		p.nulls.Set(uint(row))
	} else {
		p.data[row] = p.pool.Put(value.AsString())
		p.nulls.Clear(uint(row))
	}
}

// String columns are never sorted, hence bounds queries cannot reach them.
func (p *stringColumn) lowerBound(Value) uint32 {
	panic("unreachable")
}

func (p *stringColumn) upperBound(Value) uint32 {
	panic("unreachable")
}

// ============================================================================
// Column handles
// ============================================================================

// Column is a read handle onto one column of a table.  Handles stay valid as
// the table grows.
type Column struct {
	table *Table
	index int
}

// Name returns the declared name of this column.
func (p *Column) Name() string {
	return p.spec().Name
}

// Type returns the declared type of this column.
func (p *Column) Type() schema.Type {
	return p.spec().Type
}

// Sorted determines whether this column was declared sorted, meaning its
// cells are maintained in ascending order.
func (p *Column) Sorted() bool {
	return p.spec().Sorted()
}

// Len returns the number of cells in this column, which always equals the
// row count of the owning table.
func (p *Column) Len() uint32 {
	return p.table.rows
}

// Get returns the cell at a given row.
func (p *Column) Get(row uint32) (Value, error) {
	return p.table.Get(p.spec().Name, row)
}

// LowerBound returns the index of the first row whose cell is >= the given
// value, or the row count if no such row exists.  This fails on columns not
// declared sorted.
func (p *Column) LowerBound(value Value) (uint32, error) {
	if err := p.checkBoundQuery(value); err != nil {
		return 0, err
	}
	//
	return p.table.columns[p.index].lowerBound(value), nil
}

// UpperBound returns the index of the first row whose cell is > the given
// value, or the row count if no such row exists.  This fails on columns not
// declared sorted.
func (p *Column) UpperBound(value Value) (uint32, error) {
	if err := p.checkBoundQuery(value); err != nil {
		return 0, err
	}
	//
	return p.table.columns[p.index].upperBound(value), nil
}

// Check a bounds query is addressed to a sorted column, and that the probe
// value matches the column kind.
func (p *Column) checkBoundQuery(value Value) error {
	col := p.spec()
	//
	if !col.Sorted() {
		return &AccessDeniedError{
			Table:  p.table.Name(),
			Column: col.Name,
			Reason: "column is not sorted",
		}
	} else if !value.matches(col.Type.Kind()) {
		return &TypeMismatchError{
			Table:    p.table.Name(),
			Column:   col.Name,
			Expected: col.Type.String(),
			Actual:   value.kindName(),
		}
	}
	//
	return nil
}

func (p *Column) spec() schema.Column {
	return p.table.spec.Columns[p.index]
}
