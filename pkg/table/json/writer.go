package json

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/consensys/go-tracetables/pkg/schema"
	"github.com/consensys/go-tracetables/pkg/table"
)

// ToJsonString converts the tables of a registry into a JSON string, with
// tables in declaration order and one object per row.  Reading the result
// back through FromBytes reproduces the same cell data.
func ToJsonString(registry *table.Registry) string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, t := range registry.Tables() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString("\"")
		builder.WriteString(t.Name())
		builder.WriteString("\": [")
		//
		writeRows(&builder, t)
		//
		builder.WriteString("]")
	}
	//
	builder.WriteString("}")
	// Done
	return builder.String()
}

func writeRows(builder *strings.Builder, t *table.Table) {
	columns := t.Spec().Columns
	//
	for row := uint32(0); row < t.RowCount(); row++ {
		if row != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString("{")
		//
		for j, col := range columns {
			if j != 0 {
				builder.WriteString(", ")
			}
			//
			builder.WriteString("\"")
			builder.WriteString(col.Name)
			builder.WriteString("\": ")
			// Row index is in range, hence this cannot fail.
			cell, _ := t.Get(col.Name, row)
			builder.WriteString(cellString(col, cell))
		}
		//
		builder.WriteString("}")
	}
}

// Render one cell as a JSON value.
func cellString(col schema.Column, cell table.Value) string {
	if cell.IsNull() {
		return "null"
	}
	//
	switch col.Type.Kind() {
	case schema.StringKind:
		// Marshalling a string cannot fail.
		bytes, _ := json.Marshal(cell.AsString())
		return string(bytes)
	case schema.Uint32Kind:
		return strconv.FormatUint(uint64(cell.AsUint32()), 10)
	default:
		return strconv.FormatInt(cell.AsInt64(), 10)
	}
}
