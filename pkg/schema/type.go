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

import "fmt"

// Kind identifies the primitive kind of value held by a column.  Every column
// stores exactly one kind, though it may additionally permit nulls (see
// Optional) or constrain its values to be row indices of another table (see
// TableId).
type Kind uint8

const (
	// Int64Kind columns hold signed 64-bit integers, such as timestamps.
	Int64Kind Kind = iota
	// Uint32Kind columns hold unsigned 32-bit integers, such as interned
	// string ids and row references.
	Uint32Kind
	// StringKind columns hold strings.
	StringKind
)

// Numeric determines whether values of this kind are totally ordered numbers,
// and hence whether a column of this kind can meaningfully be declared sorted.
func (k Kind) Numeric() bool {
	return k == Int64Kind || k == Uint32Kind
}

// String produces a string representation of this kind.
func (k Kind) String() string {
	switch k {
	case Int64Kind:
		return "int64"
	case Uint32Kind:
		return "uint32"
	case StringKind:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Type represents the logical type of a column, which restricts the set of
// values the column can take on.  A type combines a primitive kind with
// optional nullability and, for reference columns, the name of the table whose
// row indices the column holds.  Types are immutable values; use the
// constructors below rather than assembling one by hand.
type Type struct {
	kind     Kind
	nullable bool
	target   string
}

// Int64 constructs the type of a signed 64-bit integer column.
func Int64() Type {
	return Type{kind: Int64Kind}
}

// Uint32 constructs the type of an unsigned 32-bit integer column.
func Uint32() Type {
	return Type{kind: Uint32Kind}
}

// String constructs the type of a string column.
func String() Type {
	return Type{kind: StringKind}
}

// TableId constructs the type of a reference column, whose values are row
// indices into the table registered under the given name.  The target table
// may be declared anywhere in the same batch, including after the referencing
// table.
func TableId(target string) Type {
	return Type{kind: Uint32Kind, target: target}
}

// Optional wraps a given type such that columns of the resulting type permit
// null values.
func Optional(t Type) Type {
	t.nullable = true
	return t
}

// Kind returns the primitive kind of values held by columns of this type.
// Observe that reference columns report Uint32Kind, since row indices are
// stored as unsigned 32-bit integers.
func (t Type) Kind() Kind {
	return t.kind
}

// Nullable determines whether columns of this type permit null values.
func (t Type) Nullable() bool {
	return t.nullable
}

// IsReference determines whether this is the type of a reference column.
func (t Type) IsReference() bool {
	return t.target != ""
}

// Target returns the name of the table referenced by columns of this type, or
// the empty string if this is not a reference type.
func (t Type) Target() string {
	return t.target
}

// String produces a string representation of this type.
func (t Type) String() string {
	var inner string
	//
	if t.target != "" {
		inner = fmt.Sprintf("id<%s>", t.target)
	} else {
		inner = t.kind.String()
	}
	//
	if t.nullable {
		return fmt.Sprintf("optional<%s>", inner)
	}
	//
	return inner
}
