package json

import (
	"testing"

	"github.com/consensys/go-tracetables/pkg/schema"
	"github.com/consensys/go-tracetables/pkg/table"
	"github.com/stretchr/testify/require"
)

func TestJsonRoundTrip(t *testing.T) {
	source := newTestRegistry(t)
	//
	snapshot := mustTable(t, source, "snapshot")
	layer := mustTable(t, source, "layer")
	//
	mustAppend(t, snapshot, map[string]table.Value{
		"ts": table.Int64(10), "count": table.Uint32(1),
	})
	mustAppend(t, snapshot, map[string]table.Value{
		"ts": table.Int64(20), "count": table.Null(),
	})
	mustAppend(t, layer, map[string]table.Value{
		"snapshot_id": table.Uint32(1), "name": table.String("status \"bar\""),
	})
	mustAppend(t, layer, map[string]table.Value{
		"snapshot_id": table.Uint32(0), "name": table.String(""),
	})
	// Write out, then read back into a fresh registry
	data := ToJsonString(source)
	sink := newTestRegistry(t)
	//
	require.NoError(t, FromBytes(sink, []byte(data)))
	// Every cell must survive the round trip
	for _, tbl := range source.Tables() {
		loaded := mustTable(t, sink, tbl.Name())
		require.Equal(t, tbl.RowCount(), loaded.RowCount())

		for row := uint32(0); row < tbl.RowCount(); row++ {
			for _, col := range tbl.Spec().Columns {
				expected, err := tbl.Get(col.Name, row)
				require.NoError(t, err)
				actual, err := loaded.Get(col.Name, row)
				require.NoError(t, err)
				require.Equal(t, expected, actual, "cell %s.%s[%d]", tbl.Name(), col.Name, row)
			}
		}
		// Loaded traces are complete, hence finalized
		require.True(t, loaded.Finalized())
	}
}

func TestJsonMissingOptional(t *testing.T) {
	registry := newTestRegistry(t)
	// Absent optional columns load as null
	data := `{"snapshot": [{"ts": 10}]}`
	require.NoError(t, FromBytes(registry, []byte(data)))
	//
	snapshot := mustTable(t, registry, "snapshot")
	cell, err := snapshot.Get("count", 0)
	require.NoError(t, err)
	require.True(t, cell.IsNull())
}

func TestJsonMissingRequired(t *testing.T) {
	registry := newTestRegistry(t)
	// Absent non-optional columns are an error
	data := `{"snapshot": [{"count": 1}]}`
	err := FromBytes(registry, []byte(data))
	require.Error(t, err)
	require.IsType(t, &table.MissingColumnError{}, err)
}

func TestJsonExplicitNull(t *testing.T) {
	registry := newTestRegistry(t)
	// Explicit nulls are fine for optional columns
	require.NoError(t, FromBytes(registry, []byte(`{"snapshot": [{"ts": 10, "count": null}]}`)))
	// But not for non-optional ones
	registry = newTestRegistry(t)
	err := FromBytes(registry, []byte(`{"snapshot": [{"ts": null, "count": 1}]}`))
	require.ErrorContains(t, err, "null for int64 column")
}

func TestJsonUnknownTable(t *testing.T) {
	registry := newTestRegistry(t)
	//
	err := FromBytes(registry, []byte(`{"nonesuch": []}`))
	require.Error(t, err)
	require.IsType(t, &table.UnknownTableError{}, err)
}

func TestJsonUnknownColumn(t *testing.T) {
	registry := newTestRegistry(t)
	// Keys naming no declared column are rejected by name
	data := `{"snapshot": [{"ts": 10, "count": 1, "bogus": "x"}]}`
	err := FromBytes(registry, []byte(data))
	require.Error(t, err)
	require.IsType(t, &table.UnknownColumnError{}, err)
}

func TestJsonViewAlias(t *testing.T) {
	registry := newTestRegistry(t)
	// Tables may be keyed by their view alias
	require.NoError(t, FromBytes(registry, []byte(`{"snap": [{"ts": 10, "count": 1}]}`)))
	//
	snapshot := mustTable(t, registry, "snapshot")
	require.Equal(t, uint32(1), snapshot.RowCount())
}

func TestJsonDuplicateAlias(t *testing.T) {
	registry := newTestRegistry(t)
	// A table may not be keyed both by name and by alias
	data := `{"snapshot": [{"ts": 10, "count": 1}], "snap": [{"ts": 20, "count": 2}]}`
	err := FromBytes(registry, []byte(data))
	require.ErrorContains(t, err, "duplicate data for table")
}

func TestJsonUint32Range(t *testing.T) {
	registry := newTestRegistry(t)
	// Values beyond uint32 are rejected, not truncated
	data := `{"snapshot": [{"ts": 10, "count": 4294967296}]}`
	err := FromBytes(registry, []byte(data))
	require.ErrorContains(t, err, "out-of-bounds for uint32")
}

func TestJsonReferenceOrder(t *testing.T) {
	registry := newTestRegistry(t)
	// The layer table is declared before snapshot, yet its references load
	// correctly because tables load in dependency order.
	data := `{"layer": [{"snapshot_id": 0, "name": "a"}], "snapshot": [{"ts": 10, "count": 1}]}`
	require.NoError(t, FromBytes(registry, []byte(data)))
	//
	layer := mustTable(t, registry, "layer")
	ref, err := layer.Resolve("snapshot_id", 0)
	require.NoError(t, err)
	require.Equal(t, "snapshot", ref.Table.Name())
}

func TestJsonMalformed(t *testing.T) {
	registry := newTestRegistry(t)
	require.Error(t, FromBytes(registry, []byte(`{"snapshot": [`)))
	require.Error(t, FromBytes(registry, []byte(`[1, 2, 3]`)))
}

// Construct a fresh registry with the layer table deliberately declared
// before the snapshot table it references.
func newTestRegistry(t *testing.T) *table.Registry {
	registry, err := table.NewRegistry([]schema.Table{
		{
			Name: "layer",
			Columns: []schema.Column{
				{Name: "snapshot_id", Type: schema.TableId("snapshot")},
				{Name: "name", Type: schema.String()},
			},
		},
		{
			Name: "snapshot",
			View: "snap",
			Columns: []schema.Column{
				{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
				{Name: "count", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			},
		},
	})
	require.NoError(t, err)
	//
	return registry
}

func mustTable(t *testing.T, registry *table.Registry, name string) *table.Table {
	tbl, err := registry.Table(name)
	require.NoError(t, err)
	//
	return tbl
}

func mustAppend(t *testing.T, tbl *table.Table, row map[string]table.Value) {
	_, err := tbl.AppendRow(row)
	require.NoError(t, err)
}
