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
	"errors"
	"slices"

	"github.com/consensys/go-tracetables/pkg/schema"
)

// Registry holds the tables built from one set of declarations, and is the
// only way of constructing them.  The registry resolves names (including
// view aliases) to tables, links reference columns to their targets, and
// owns the string pool shared by every table it holds.
type Registry struct {
	// Tables in declaration order.
	tables []*Table
	// Maps table names to tables.
	index map[string]*Table
	// Maps view aliases to tables.
	views map[string]*Table
	// Intern pool shared across all tables.
	pool *StringPool
}

// NewRegistry compiles a set of table declarations and, provided they are
// well-formed, builds an empty table for each.  Declarations may reference
// each other in any order.  Otherwise, all compilation errors are collected
// and returned together.
func NewRegistry(schemas []schema.Table) (*Registry, error) {
	flattened, errs := schema.Compile(schemas)
	//
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	//
	p := &Registry{
		tables: make([]*Table, 0, len(flattened)),
		index:  make(map[string]*Table, len(flattened)),
		views:  make(map[string]*Table),
		pool:   NewStringPool(),
	}
	//
	for _, s := range flattened {
		t := newTable(s, p.pool)
		p.tables = append(p.tables, t)
		p.index[s.Name] = t
		//
		if s.View != "" {
			p.views[s.View] = t
		}
	}
	// Link every reference column to its target table.  Compilation has
	// already established all targets exist.
	for _, t := range p.tables {
		for i, col := range t.spec.Columns {
			if col.Type.IsReference() {
				t.targets[i] = p.index[col.Type.Target()]
			}
		}
	}
	//
	return p, nil
}

// Table resolves a name to a table.  Declared table names take precedence,
// then view aliases.
func (p *Registry) Table(name string) (*Table, error) {
	if t, ok := p.index[name]; ok {
		return t, nil
	} else if t, ok := p.views[name]; ok {
		return t, nil
	}
	//
	return nil, &UnknownTableError{Name: name}
}

// Tables returns every table held, in declaration order.
func (p *Registry) Tables() []*Table {
	return p.tables
}

// Pool returns the string pool shared by all tables in this registry.
func (p *Registry) Pool() *StringPool {
	return p.pool
}

// FinalizeAll finalizes every table held, in declaration order.  Tables
// already finalized are unaffected.
func (p *Registry) FinalizeAll() {
	for _, t := range p.tables {
		t.Finalize()
	}
}

// DependencyOrder returns every table held, ordered such that each table
// appears after all tables its reference columns point into.  Replaying rows
// in this order guarantees reference cells always name rows appended
// beforehand.  Ties are broken by declaration order, and should the
// reference graph contain a cycle, the tables involved fall back to
// declaration order.
func (p *Registry) DependencyOrder() []*Table {
	var (
		order = make([]*Table, 0, len(p.tables))
		done  = make(map[*Table]bool, len(p.tables))
		// Number of distinct unprocessed targets per table.
		degree = make(map[*Table]int, len(p.tables))
	)
	//
	for _, t := range p.tables {
		degree[t] = len(targetsOf(t))
	}
	//
	for len(order) < len(p.tables) {
		progressed := false
		// Take tables (in declaration order) whose targets have all been
		// processed.
		for _, t := range p.tables {
			if !done[t] && degree[t] == 0 {
				order = append(order, t)
				done[t] = true
				progressed = true
				// Release every table referencing t.
				for _, u := range p.tables {
					if !done[u] && referencesTarget(u, t) {
						degree[u]--
					}
				}
			}
		}
		// A full pass without progress means the remaining tables form
		// reference cycles.
		if !progressed {
			for _, t := range p.tables {
				if !done[t] {
					order = append(order, t)
					done[t] = true
				}
			}
		}
	}
	//
	return order
}

// Determine the distinct tables a given table references, excluding itself.
func targetsOf(t *Table) []*Table {
	var targets []*Table
	//
	for _, target := range t.targets {
		if target != nil && target != t && !slices.Contains(targets, target) {
			targets = append(targets, target)
		}
	}
	//
	return targets
}

// Check whether a table references a given target through any of its
// reference columns.
func referencesTarget(t *Table, target *Table) bool {
	return slices.Contains(targetsOf(t), target)
}
