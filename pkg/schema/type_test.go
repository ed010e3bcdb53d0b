package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeRendering(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{name: "int64", typ: Int64(), expected: "int64"},
		{name: "uint32", typ: Uint32(), expected: "uint32"},
		{name: "string", typ: String(), expected: "string"},
		{name: "optional int64", typ: Optional(Int64()), expected: "optional<int64>"},
		{name: "reference", typ: TableId("snapshot"), expected: "id<snapshot>"},
		{name: "optional reference", typ: Optional(TableId("snapshot")), expected: "optional<id<snapshot>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestTypeNullability(t *testing.T) {
	assert.False(t, Int64().Nullable(), "base types should not be nullable")
	assert.True(t, Optional(Int64()).Nullable(), "Optional should make a type nullable")
	// Wrapping twice changes nothing
	assert.True(t, Optional(Optional(String())).Nullable())
	// Optional preserves the underlying kind
	assert.Equal(t, StringKind, Optional(String()).Kind())
}

func TestTypeReference(t *testing.T) {
	ref := TableId("snapshot")

	assert.True(t, ref.IsReference())
	assert.Equal(t, "snapshot", ref.Target())
	// References store row indices as unsigned 32-bit integers
	assert.Equal(t, Uint32Kind, ref.Kind())
	// Optional wrapping preserves the target
	assert.Equal(t, "snapshot", Optional(ref).Target())
	// Non-reference types report no target
	assert.False(t, Uint32().IsReference())
	assert.Equal(t, "", Uint32().Target())
}

func TestKindNumeric(t *testing.T) {
	assert.True(t, Int64Kind.Numeric())
	assert.True(t, Uint32Kind.Numeric())
	assert.False(t, StringKind.Numeric())
}

func TestColumnSorted(t *testing.T) {
	sorted := Column{Name: "ts", Type: Int64(), Flags: Sorted}
	unsorted := Column{Name: "tag", Type: String()}

	assert.True(t, sorted.Sorted())
	assert.False(t, unsorted.Sorted())
}
