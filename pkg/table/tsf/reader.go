package tsf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/go-tracetables/pkg/schema"
	"github.com/consensys/go-tracetables/pkg/table"
)

// fromBytes parses an uncompressed payload back into a registry, or produces
// an error if the original file was malformed in some way.  Rows are replayed
// through the normal append path, hence a payload whose rows violate sorting
// or reference bounds is rejected just as live writes would be.
func fromBytes(data []byte) (*table.Registry, error) {
	// Construct new bytes.Reader
	buf := bytes.NewReader(data)
	// Read schema section
	descriptors, err := readSchema(buf)
	//
	if err != nil {
		return nil, err
	}
	// Rebuild declarations and compile them afresh
	schemas := make([]schema.Table, len(descriptors))
	//
	for i := range descriptors {
		if schemas[i], err = descriptors[i].toTable(); err != nil {
			return nil, err
		}
	}
	//
	registry, err := table.NewRegistry(schemas)
	//
	if err != nil {
		return nil, err
	}
	// Read pool section
	pool, err := readPool(buf)
	//
	if err != nil {
		return nil, err
	}
	// Read table sections in declaration order
	staged := make(map[string]stagedTable, len(descriptors))
	//
	for _, desc := range descriptors {
		if staged[desc.Name], err = readTable(desc, pool, buf); err != nil {
			return nil, err
		}
	}
	// Replay rows ordered such that references always point at rows which
	// have been loaded already.
	for _, t := range registry.DependencyOrder() {
		ith := staged[t.Name()]
		//
		for i, row := range ith.rows {
			if _, err := t.AppendRow(row); err != nil {
				return nil, fmt.Errorf("table %s row %d: %w", t.Name(), i, err)
			}
		}
		// Restore lifecycle phase
		if ith.finalized {
			t.Finalize()
		}
	}
	// Done
	return registry, nil
}

// stagedTable holds the decoded rows of one table prior to replay.
type stagedTable struct {
	finalized bool
	rows      []map[string]table.Value
}

func readSchema(buf *bytes.Reader) ([]tableDescriptor, error) {
	var length uint32
	// Read schema length
	if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
		return nil, err
	}
	// Read schema bytes
	schemaJson, err := readBytes(buf, length)
	//
	if err != nil {
		return nil, err
	}
	//
	var descriptors []tableDescriptor
	//
	if err := json.Unmarshal(schemaJson, &descriptors); err != nil {
		return nil, err
	}
	//
	return descriptors, nil
}

func readPool(buf *bytes.Reader) ([]string, error) {
	var count uint32
	// Read entry count
	if err := binary.Read(buf, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	//
	pool := make([]string, count)
	// Read entries in index order
	for i := uint32(0); i < count; i++ {
		var length uint32
		// Read entry length
		if err := binary.Read(buf, binary.BigEndian, &length); err != nil {
			return nil, err
		}
		// Read entry bytes
		strBytes, err := readBytes(buf, length)
		//
		if err != nil {
			return nil, err
		}
		//
		pool[i] = string(strBytes)
	}
	//
	return pool, nil
}

func readTable(desc tableDescriptor, pool []string, buf *bytes.Reader) (stagedTable, error) {
	var (
		staged    stagedTable
		finalized uint8
		rows      uint32
	)
	// Read lifecycle phase
	if err := binary.Read(buf, binary.BigEndian, &finalized); err != nil {
		return staged, err
	}
	// Read row count
	if err := binary.Read(buf, binary.BigEndian, &rows); err != nil {
		return staged, err
	}
	//
	staged.finalized = finalized != 0
	staged.rows = make([]map[string]table.Value, rows)
	//
	for i := range staged.rows {
		staged.rows[i] = make(map[string]table.Value, len(desc.Columns))
	}
	// Read column arrays in declaration order
	for _, col := range desc.Columns {
		if err := readColumn(desc.Name, col, pool, staged.rows, buf); err != nil {
			return staged, err
		}
	}
	//
	return staged, nil
}

func readColumn(tableName string, col columnDescriptor, pool []string,
	rows []map[string]table.Value, buf *bytes.Reader) error {
	var (
		bitmap []byte
		err    error
		n      = uint32(len(rows))
	)
	// Read null bitmap for nullable columns only
	if col.Nullable {
		if bitmap, err = readBytes(buf, (n+7)/8); err != nil {
			return err
		}
	}
	// Read fixed-width cell data
	for i := uint32(0); i < n; i++ {
		cell := table.Null()
		null := bitmap != nil && bitmap[i/8]&(1<<(i%8)) != 0
		//
		switch schema.Kind(col.Kind) {
		case schema.Int64Kind:
			var v uint64
			//
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return err
			}
			//
			if !null {
				cell = table.Int64(int64(v))
			}
		case schema.Uint32Kind:
			var v uint32
			//
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return err
			}
			//
			if !null {
				cell = table.Uint32(v)
			}
		default:
			var v uint32
			//
			if err := binary.Read(buf, binary.BigEndian, &v); err != nil {
				return err
			}
			//
			if !null {
				if v >= uint32(len(pool)) {
					return fmt.Errorf("table %s column %s row %d: string index %d out-of-bounds",
						tableName, col.Name, i, v)
				}
				//
				cell = table.String(pool[v])
			}
		}
		//
		rows[i][col.Name] = cell
	}
	//
	return nil
}

// Read exactly length bytes from the reader.
func readBytes(buf *bytes.Reader, length uint32) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	//
	data := make([]byte, length)
	//
	if _, err := io.ReadFull(buf, data); err != nil {
		return nil, errors.New("malformed table file")
	}
	//
	return data, nil
}
