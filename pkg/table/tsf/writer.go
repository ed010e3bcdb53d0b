package tsf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/consensys/go-tracetables/pkg/schema"
	"github.com/consensys/go-tracetables/pkg/table"
)

// toBytes writes the tables of a registry as an uncompressed payload: the
// embedded schema, the string pool, then one section of column arrays per
// table.
func toBytes(registry *table.Registry) ([]byte, error) {
	var buf bytes.Buffer
	//
	if err := writeBytes(registry, &buf); err != nil {
		return nil, err
	}
	//
	return buf.Bytes(), nil
}

// writeBytes writes the payload to an io.Writer.
func writeBytes(registry *table.Registry, buf io.Writer) error {
	var (
		tables      = registry.Tables()
		descriptors = make([]tableDescriptor, len(tables))
	)
	//
	for i, t := range tables {
		descriptors[i] = newTableDescriptor(t.Spec())
	}
	// Marshall schema section
	schemaJson, err := json.Marshal(descriptors)
	//
	if err != nil {
		return err
	}
	// Write schema length
	if err := binary.Write(buf, binary.BigEndian, uint32(len(schemaJson))); err != nil {
		return err
	}
	// Write schema bytes
	if _, err := buf.Write(schemaJson); err != nil {
		return err
	}
	// Gather every string cell into a file-local pool, so each distinct
	// string is stored once regardless of how many cells hold it.
	pool := buildPool(registry)
	// Write pool section
	if err := writePool(pool, buf); err != nil {
		return err
	}
	// Write table sections
	for _, t := range tables {
		if err := writeTable(t, pool, buf); err != nil {
			return err
		}
	}
	// Done
	return nil
}

func buildPool(registry *table.Registry) *table.StringPool {
	pool := table.NewStringPool()
	//
	for _, t := range registry.Tables() {
		for _, col := range t.Spec().Columns {
			if col.Type.Kind() != schema.StringKind {
				continue
			}
			//
			for row := uint32(0); row < t.RowCount(); row++ {
				// Row index is in range, hence this cannot fail.
				cell, _ := t.Get(col.Name, row)
				//
				if !cell.IsNull() {
					pool.Put(cell.AsString())
				}
			}
		}
	}
	//
	return pool
}

func writePool(pool *table.StringPool, buf io.Writer) error {
	// Write entry count
	if err := binary.Write(buf, binary.BigEndian, pool.Count()); err != nil {
		return err
	}
	// Write entries in index order
	for i := uint32(0); i < pool.Count(); i++ {
		strBytes := []byte(pool.Get(i))
		// Write entry length
		if err := binary.Write(buf, binary.BigEndian, uint32(len(strBytes))); err != nil {
			return err
		}
		// Write entry bytes
		if _, err := buf.Write(strBytes); err != nil {
			return err
		}
	}
	//
	return nil
}

func writeTable(t *table.Table, pool *table.StringPool, buf io.Writer) error {
	var finalized uint8
	//
	if t.Finalized() {
		finalized = 1
	}
	// Write lifecycle phase
	if err := binary.Write(buf, binary.BigEndian, finalized); err != nil {
		return err
	}
	// Write row count
	if err := binary.Write(buf, binary.BigEndian, t.RowCount()); err != nil {
		return err
	}
	// Write column arrays in declaration order
	for _, col := range t.Spec().Columns {
		if err := writeColumn(t, col, pool, buf); err != nil {
			return err
		}
	}
	//
	return nil
}

func writeColumn(t *table.Table, col schema.Column, pool *table.StringPool, buf io.Writer) error {
	var (
		rows  = t.RowCount()
		cells = make([]table.Value, rows)
	)
	//
	for row := uint32(0); row < rows; row++ {
		// Row index is in range, hence this cannot fail.
		cells[row], _ = t.Get(col.Name, row)
	}
	// Write null bitmap, one bit per row, for nullable columns only.
	if col.Type.Nullable() {
		bitmap := make([]byte, (rows+7)/8)
		//
		for row, cell := range cells {
			if cell.IsNull() {
				bitmap[row/8] |= 1 << (row % 8)
			}
		}
		//
		if _, err := buf.Write(bitmap); err != nil {
			return err
		}
	}
	// Write fixed-width cell data, with zero placeholders where the bitmap
	// marks a null.
	switch col.Type.Kind() {
	case schema.Int64Kind:
		for _, cell := range cells {
			var v int64
			//
			if !cell.IsNull() {
				v = cell.AsInt64()
			}
			//
			if err := binary.Write(buf, binary.BigEndian, uint64(v)); err != nil {
				return err
			}
		}
	case schema.Uint32Kind:
		for _, cell := range cells {
			var v uint32
			//
			if !cell.IsNull() {
				v = cell.AsUint32()
			}
			//
			if err := binary.Write(buf, binary.BigEndian, v); err != nil {
				return err
			}
		}
	default:
		// Strings are stored as pool indices.
		for _, cell := range cells {
			var v uint32
			//
			if !cell.IsNull() {
				v = pool.Put(cell.AsString())
			}
			//
			if err := binary.Write(buf, binary.BigEndian, v); err != nil {
				return err
			}
		}
	}
	//
	return nil
}
