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
package json

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/consensys/go-tracetables/pkg/schema"
	"github.com/consensys/go-tracetables/pkg/table"
)

// FromBytes parses table data expressed in JSON notation and appends it into
// the tables of a given registry.  For example, {"protolog": [{"ts": 1,
// ...}]} holds one row for the protolog table.  Tables are keyed by name or
// view alias, rows are objects keyed by column name, and absent optional
// columns are treated as null.  Tables are loaded in dependency order, so
// reference cells may point into any table of the same file.  Once every row
// is in place the whole registry is finalized, since a loaded trace is a
// complete one.
func FromBytes(registry *table.Registry, data []byte) error {
	var rawData map[string][]map[string]json.RawMessage
	// Attempt to unmarshall
	if jsonErr := json.Unmarshal(data, &rawData); jsonErr != nil {
		return jsonErr
	}
	// Resolve every key against the registry, rejecting unknown tables and
	// two keys aliasing the same table.
	rows := make(map[*table.Table][]map[string]json.RawMessage, len(rawData))
	//
	for name, tableRows := range rawData {
		t, err := registry.Table(name)
		//
		if err != nil {
			return err
		} else if _, ok := rows[t]; ok {
			return fmt.Errorf("duplicate data for table %q", t.Name())
		}
		//
		rows[t] = tableRows
	}
	// Load tables such that every reference points at rows already loaded.
	for _, t := range registry.DependencyOrder() {
		if err := appendRows(t, rows[t]); err != nil {
			return err
		}
	}
	// Loaded traces are complete traces.
	registry.FinalizeAll()
	//
	return nil
}

// Append the parsed rows of one table, translating raw cells against the
// declared column types.
func appendRows(t *table.Table, rows []map[string]json.RawMessage) error {
	columns := t.Spec().Columns
	//
	for i, rawRow := range rows {
		row := make(map[string]table.Value, len(columns))
		// Fill declared cells, with nulls for absent optional columns.
		for _, col := range columns {
			raw, ok := rawRow[col.Name]
			//
			if !ok && col.Type.Nullable() {
				row[col.Name] = table.Null()
				continue
			} else if ok {
				value, err := parseCell(t.Name(), col, uint(i), raw)
				//
				if err != nil {
					return err
				}
				//
				row[col.Name] = value
			}
		}
		// Carry over any keys naming no declared column, so the table itself
		// rejects them by name.  Their values are never inspected.
		for name := range rawRow {
			if !t.HasColumn(name) {
				row[name] = table.Null()
			}
		}
		//
		if _, err := t.AppendRow(row); err != nil {
			return err
		}
	}
	//
	return nil
}

// Parse one raw cell against its column declaration.
func parseCell(tableName string, col schema.Column, row uint, raw json.RawMessage) (table.Value, error) {
	if string(raw) == "null" {
		if !col.Type.Nullable() {
			return table.Value{}, fmt.Errorf("table %s column %s row %d: null for %s column",
				tableName, col.Name, row, col.Type)
		}
		//
		return table.Null(), nil
	}
	//
	switch col.Type.Kind() {
	case schema.Int64Kind:
		v, err := strconv.ParseInt(string(raw), 10, 64)
		//
		if err != nil {
			return table.Value{}, fmt.Errorf("table %s column %s row %d: %q is not an int64",
				tableName, col.Name, row, string(raw))
		}
		//
		return table.Int64(v), nil
	case schema.Uint32Kind:
		v, err := strconv.ParseUint(string(raw), 10, 32)
		//
		if err != nil {
			return table.Value{}, fmt.Errorf("table %s column %s row %d: %q out-of-bounds for uint32",
				tableName, col.Name, row, string(raw))
		}
		//
		return table.Uint32(uint32(v)), nil
	default:
		var s string
		//
		if jsonErr := json.Unmarshal(raw, &s); jsonErr != nil {
			return table.Value{}, fmt.Errorf("table %s column %s row %d: %q is not a string",
				tableName, col.Name, row, string(raw))
		}
		//
		return table.String(s), nil
	}
}
