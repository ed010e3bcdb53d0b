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
package tsf

import (
	"fmt"

	"github.com/consensys/go-tracetables/pkg/schema"
)

// tableDescriptor is the wire form of one flattened table declaration, as
// embedded in the schema section of a table file.  Doc strings are not
// persisted.
type tableDescriptor struct {
	Name    string             `json:"name"`
	View    string             `json:"view,omitempty"`
	Columns []columnDescriptor `json:"columns"`
}

// columnDescriptor is the wire form of one column declaration.
type columnDescriptor struct {
	Name     string `json:"name"`
	Kind     uint8  `json:"kind"`
	Nullable bool   `json:"nullable,omitempty"`
	Target   string `json:"target,omitempty"`
	Sorted   bool   `json:"sorted,omitempty"`
	Access   uint8  `json:"access,omitempty"`
	Duration uint8  `json:"duration,omitempty"`
}

// Construct the wire form of a table declaration.
func newTableDescriptor(spec schema.Table) tableDescriptor {
	columns := make([]columnDescriptor, len(spec.Columns))
	//
	for i, col := range spec.Columns {
		columns[i] = columnDescriptor{
			Name:     col.Name,
			Kind:     uint8(col.Type.Kind()),
			Nullable: col.Type.Nullable(),
			Target:   col.Type.Target(),
			Sorted:   col.Sorted(),
			Access:   uint8(col.Access),
			Duration: uint8(col.Duration),
		}
	}
	//
	return tableDescriptor{Name: spec.Name, View: spec.View, Columns: columns}
}

// Reconstruct a table declaration from its wire form.  Anything beyond basic
// shape (e.g. duplicate names, bad flag combinations) is left for schema
// compilation to reject.
func (p *tableDescriptor) toTable() (schema.Table, error) {
	columns := make([]schema.Column, len(p.Columns))
	//
	for i, col := range p.Columns {
		t, err := col.toType()
		//
		if err != nil {
			return schema.Table{}, fmt.Errorf("table %q: %w", p.Name, err)
		}
		//
		columns[i] = schema.Column{
			Name:     col.Name,
			Type:     t,
			Access:   schema.Access(col.Access),
			Duration: schema.Duration(col.Duration),
		}
		//
		if col.Sorted {
			columns[i].Flags = schema.Sorted
		}
	}
	//
	return schema.Table{Name: p.Name, View: p.View, Columns: columns}, nil
}

// Reconstruct a column type from its wire form.
func (p *columnDescriptor) toType() (schema.Type, error) {
	var t schema.Type
	//
	switch {
	case p.Target != "":
		t = schema.TableId(p.Target)
	case schema.Kind(p.Kind) == schema.Int64Kind:
		t = schema.Int64()
	case schema.Kind(p.Kind) == schema.Uint32Kind:
		t = schema.Uint32()
	case schema.Kind(p.Kind) == schema.StringKind:
		t = schema.String()
	default:
		return schema.Type{}, fmt.Errorf("column %q has unknown kind %d", p.Name, p.Kind)
	}
	//
	if p.Nullable {
		t = schema.Optional(t)
	}
	//
	return t, nil
}
