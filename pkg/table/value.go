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
	"cmp"
	"fmt"

	"github.com/consensys/go-tracetables/pkg/schema"
)

// valueKind discriminates the runtime representation of a cell value.  The
// zero kind is null, so the zero Value is the null value.
type valueKind uint8

const (
	nullValue valueKind = iota
	int64Value
	uint32Value
	stringValue
)

// Value is a single cell value as it crosses the table boundary: either null,
// or a value of one of the primitive column kinds.  Values are small
// immutable variants; use the constructors below.  Two values constructed
// from equal inputs compare equal with ==.
type Value struct {
	kind valueKind
	num  uint64
	str  string
}

// Null constructs the null value, used for absent cells of optional columns.
func Null() Value {
	return Value{}
}

// Int64 constructs a signed 64-bit integer value.
func Int64(v int64) Value {
	return Value{kind: int64Value, num: uint64(v)}
}

// Uint32 constructs an unsigned 32-bit integer value.  Reference cells (row
// indices into another table) are also expressed as Uint32 values.
func Uint32(v uint32) Value {
	return Value{kind: uint32Value, num: uint64(v)}
}

// String constructs a string value.
func String(s string) Value {
	return Value{kind: stringValue, str: s}
}

// IsNull determines whether this is the null value.
func (v Value) IsNull() bool {
	return v.kind == nullValue
}

// AsInt64 accesses this value as a signed 64-bit integer, and panics if it
// holds anything else.  Use after the column type is known.
func (v Value) AsInt64() int64 {
	if v.kind != int64Value {
		panic(fmt.Sprintf("value %s accessed as int64", v))
	}
	//
	return int64(v.num)
}

// AsUint32 accesses this value as an unsigned 32-bit integer, and panics if
// it holds anything else.
func (v Value) AsUint32() uint32 {
	if v.kind != uint32Value {
		panic(fmt.Sprintf("value %s accessed as uint32", v))
	}
	//
	return uint32(v.num)
}

// AsString accesses this value as a string, and panics if it holds anything
// else.
func (v Value) AsString() string {
	if v.kind != stringValue {
		panic(fmt.Sprintf("value %s accessed as string", v))
	}
	//
	return v.str
}

// Cmp compares two non-null values of the same kind, returning a negative
// number if v < other, zero if they are equal and a positive number
// otherwise.  This panics on nulls and on mismatched kinds, since neither
// arises for values drawn from the same column.
func (v Value) Cmp(other Value) int {
	if v.kind != other.kind || v.kind == nullValue {
		panic(fmt.Sprintf("comparing %s against %s", v, other))
	}
	//
	switch v.kind {
	case int64Value:
		return cmp.Compare(int64(v.num), int64(other.num))
	case uint32Value:
		return cmp.Compare(v.num, other.num)
	default:
		return cmp.Compare(v.str, other.str)
	}
}

// String produces a human-readable form of this value, suitable for error
// messages and debug output.
func (v Value) String() string {
	switch v.kind {
	case nullValue:
		return "null"
	case int64Value:
		return fmt.Sprintf("%d", int64(v.num))
	case uint32Value:
		return fmt.Sprintf("%d", uint32(v.num))
	default:
		return fmt.Sprintf("%q", v.str)
	}
}

// Determine the kind name of this value as it appears in error messages.
func (v Value) kindName() string {
	switch v.kind {
	case nullValue:
		return "null"
	case int64Value:
		return schema.Int64Kind.String()
	case uint32Value:
		return schema.Uint32Kind.String()
	default:
		return schema.StringKind.String()
	}
}

// Check whether this value fits the primitive kind of a column.  Nulls never
// match a kind; nullability is checked separately.
func (v Value) matches(kind schema.Kind) bool {
	switch v.kind {
	case int64Value:
		return kind == schema.Int64Kind
	case uint32Value:
		return kind == schema.Uint32Kind
	case stringValue:
		return kind == schema.StringKind
	default:
		return false
	}
}
