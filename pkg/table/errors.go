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

import "fmt"

// TypeMismatchError signals that a value offered for a cell does not match
// the declared column type, including a null offered to a non-optional
// column.
type TypeMismatchError struct {
	// Table in which the mismatch occurred.
	Table string
	// Column whose declared type was violated.
	Column string
	// Expected type, rendered from the column declaration.
	Expected string
	// Actual kind of the offered value.
	Actual string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s.%s: expected %s, got %s", e.Table, e.Column, e.Expected, e.Actual)
}

// AccessDeniedError signals a write rejected by the access tier of a column,
// or any mutation attempted against a table in the wrong lifecycle phase.
type AccessDeniedError struct {
	// Table against which the write was attempted.
	Table string
	// Column being written, or empty for row-level operations.
	Column string
	// Reason the write was rejected.
	Reason string
}

func (e *AccessDeniedError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s", e.Table, e.Reason)
	}
	//
	return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Reason)
}

// OutOfOrderError signals a value which would break the ordering invariant of
// a sorted column, either on append or on in-place update.
type OutOfOrderError struct {
	// Table holding the sorted column.
	Table string
	// Sorted column whose order would be broken.
	Column string
	// Offending value.
	Value Value
	// Bound the value was compared against.
	Bound Value
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("%s.%s: value %s breaks sort order (bound %s)", e.Table, e.Column, e.Value, e.Bound)
}

// DanglingReferenceError signals a reference cell naming a row which does not
// exist in the target table, caught either when the cell is written or when
// it is resolved.
type DanglingReferenceError struct {
	// Table holding the reference column.
	Table string
	// Reference column.
	Column string
	// Table the reference points into.
	Target string
	// Row index which does not exist in the target.
	Row uint32
	// Number of rows the target actually holds.
	Rows uint32
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s.%s: row %d does not exist in %s (%d rows)",
		e.Table, e.Column, e.Row, e.Target, e.Rows)
}

// RowOutOfRangeError signals an access to a row index at or beyond the
// current row count of a table.
type RowOutOfRangeError struct {
	// Table being accessed.
	Table string
	// Row index which was out of range.
	Row uint32
	// Number of rows the table actually holds.
	Rows uint32
}

func (e *RowOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: row %d out of range (%d rows)", e.Table, e.Row, e.Rows)
}

// UnknownTableError signals a lookup of a table name (or view alias) which
// the registry does not know.
type UnknownTableError struct {
	// Name which failed to resolve.
	Name string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("unknown table %q", e.Name)
}

// UnknownColumnError signals a reference to a column which the table does not
// declare, including extra keys in an appended row.
type UnknownColumnError struct {
	// Table in which the lookup occurred.
	Table string
	// Column name which failed to resolve.
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("%s: unknown column %q", e.Table, e.Column)
}

// MissingColumnError signals an appended row which omits a declared column.
// Every declared column must be given a value on append, with optional
// columns taking an explicit null.
type MissingColumnError struct {
	// Table being appended to.
	Table string
	// Declared column the row omitted.
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: row is missing column %q", e.Table, e.Column)
}

// NullReferenceError signals an attempt to resolve a reference cell which
// holds null.  A null reference is a legal cell value for an optional
// reference column, but it names no row and hence cannot be resolved.
type NullReferenceError struct {
	// Table holding the reference column.
	Table string
	// Reference column.
	Column string
	// Row whose cell is null.
	Row uint32
}

func (e *NullReferenceError) Error() string {
	return fmt.Sprintf("%s.%s: reference at row %d is null", e.Table, e.Column, e.Row)
}
