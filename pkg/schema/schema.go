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

// Flag is a bitmask of storage hints attached to a column.  Flags never change
// what values a column accepts, only how they are laid out and which queries
// the storage layer can answer efficiently.
type Flag uint8

const (
	// Sorted guarantees the column is non-decreasing across row insertion
	// order, which enables binary-search range queries over it.  Appending a
	// value below the current last value is an error, not a silent reorder.
	Sorted Flag = 1 << iota
)

// Has checks whether all of the given flags are set.
func (f Flag) Has(flag Flag) bool {
	return f&flag == flag
}

// Access identifies the declared mutability class of a column.  Row appends
// are the ingestion path and are never gated by access; the class governs
// in-place cell writes only.
type Access uint8

const (
	// ReadOnly columns are populated by row appends and never mutated
	// afterwards.
	ReadOnly Access = iota
	// LowPerfWrite columns additionally accept in-place cell writes.  Such
	// writes are expected to be rare and do not take the bulk-append fast
	// path.
	LowPerfWrite
)

// String produces a string representation of this access class.
func (a Access) String() string {
	if a == LowPerfWrite {
		return "read+write"
	}
	//
	return "read"
}

// Duration identifies when a writable column accepts in-place writes,
// relative to the finalization of its table.
type Duration uint8

const (
	// Always permits writes during any lifecycle phase.
	Always Duration = iota
	// PostFinalization defers writes until after the owning table has been
	// finalized.  This suits columns whose values are only knowable once the
	// full trace has been parsed, such as deinterned string ids.
	PostFinalization
)

// Column describes a single table column: its name, logical type, storage
// hints and mutability.  The zero values of Flags, Access and Duration
// describe the common case of an unsorted, read-only, always-accessible
// column, so most declarations only need Name and Type.
type Column struct {
	// Name of the column, unique within its table.
	Name string
	// Type of the values this column holds.
	Type Type
	// Flags holds storage hints, such as Sorted.
	Flags Flag
	// Access declares the mutability class of this column.
	Access Access
	// Duration declares when writes are permitted.  Irrelevant (but
	// harmless) for ReadOnly columns.
	Duration Duration
}

// Sorted determines whether this column carries the Sorted flag.
func (p Column) Sorted() bool {
	return p.Flags.Has(Sorted)
}

// Doc attaches human-readable documentation to a table.  Documentation is
// plain metadata: it never affects storage behaviour and is excluded from the
// runtime contract.
type Doc struct {
	// Table documentation string.
	Table string
	// Group names the family of tables this one belongs to.
	Group string
	// Columns maps column names to their documentation strings.
	Columns map[string]string
}

// Table describes a named table as an ordered sequence of columns.  A
// descriptor is plain data; it only becomes a queryable table once compiled
// into a registry, which validates the whole batch of descriptors as a unit
// and takes its own immutable copy.
type Table struct {
	// Name is the unique identifier of this table.
	Name string
	// View optionally declares an alias under which this table is also
	// resolvable.  Aliases share the table namespace and must not collide
	// with table names or other aliases.
	View string
	// Extends optionally names a parent table within the same batch whose
	// columns this table inherits.  Inherited columns precede declared ones.
	Extends string
	// Columns declared by this table, in order.
	Columns []Column
	// Doc holds optional documentation strings.
	Doc Doc
}

// Column looks up a column by name, returning false if no such column exists.
func (p *Table) Column(name string) (Column, bool) {
	for _, c := range p.Columns {
		if c.Name == name {
			return c, true
		}
	}
	// Column does not exist
	return Column{}, false
}

// HasColumn checks whether this table declares a column with the given name.
func (p *Table) HasColumn(name string) bool {
	_, ok := p.Column(name)
	return ok
}

// Equal compares two table descriptors structurally, ignoring documentation
// (which is outside the runtime contract).
func (p *Table) Equal(other *Table) bool {
	if p.Name != other.Name || p.View != other.View || p.Extends != other.Extends {
		return false
	}
	//
	if len(p.Columns) != len(other.Columns) {
		return false
	}
	//
	for i := range p.Columns {
		if p.Columns[i] != other.Columns[i] {
			return false
		}
	}
	//
	return true
}
