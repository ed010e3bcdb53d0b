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

import (
	"fmt"
	"slices"

	log "github.com/sirupsen/logrus"
)

// Compile validates a batch of table descriptors as a unit and produces their
// flattened forms, with inherited columns resolved and prepended and the
// extension link cleared.  Validation
// is global and two-pass: first every table name is declared, then
// cross-table links (references and extensions) are checked against the full
// batch.  Hence a table may reference another table declared later in the
// batch.  An empty error slice means the batch is well-formed; any error
// means the batch cannot safely serve queries and must be rejected as a
// whole.
func Compile(tables []Table) ([]Table, []error) {
	var (
		errs  []error
		index = make(map[string]int, len(tables))
		views = make(map[string]string)
	)
	// Declare all table names
	for i, t := range tables {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("table at position %d has no name", i))
		} else if _, ok := index[t.Name]; ok {
			errs = append(errs, fmt.Errorf("duplicate table %q", t.Name))
		} else {
			index[t.Name] = i
		}
	}
	// Check view aliases against the declared namespace
	for _, t := range tables {
		if t.View == "" {
			continue
		}
		//
		if _, ok := index[t.View]; ok {
			errs = append(errs, fmt.Errorf("view %q of table %q collides with a table name", t.View, t.Name))
		} else if owner, ok := views[t.View]; ok {
			errs = append(errs, fmt.Errorf("view %q of table %q already declared by table %q", t.View, t.Name, owner))
		} else {
			views[t.View] = t.Name
		}
	}
	// Flatten extensions and check columns
	flattened := make([]Table, len(tables))
	//
	for i, t := range tables {
		columns, err := flattenColumns(tables, index, t, nil)
		//
		if err != nil {
			errs = append(errs, err)
			// Fall back on the declared columns so that remaining checks can
			// still run.
			columns = t.Columns
		}
		//
		flattened[i] = t
		flattened[i].Columns = columns
		// A flattened table inherits nothing further.
		flattened[i].Extends = ""
		//
		errs = append(errs, checkColumns(index, &flattened[i])...)
		// Documentation keys are metadata only.  A key naming no declared
		// column (the odd schema ships one) is reported but never fatal.
		for _, key := range sortedKeys(t.Doc.Columns) {
			if !flattened[i].HasColumn(key) {
				log.Warnf("table %q documents unknown column %q", t.Name, key)
			}
		}
	}
	//
	return flattened, errs
}

// Flatten the column sequence of a table by recursively resolving its
// extension chain.  The trail records tables already being flattened further
// up the call stack, which is how extension cycles are caught.
func flattenColumns(tables []Table, index map[string]int, t Table, trail []string) ([]Column, error) {
	if t.Extends == "" {
		return t.Columns, nil
	}
	// Check for an extension cycle
	if slices.Contains(trail, t.Name) {
		return nil, fmt.Errorf("cyclic extension involving table %q", t.Name)
	}
	//
	pi, ok := index[t.Extends]
	if !ok {
		return nil, fmt.Errorf("table %q extends unknown table %q", t.Name, t.Extends)
	}
	// Flatten parent first
	parent, err := flattenColumns(tables, index, tables[pi], append(trail, t.Name))
	if err != nil {
		return nil, err
	}
	// Inherited columns precede declared ones
	columns := make([]Column, 0, len(parent)+len(t.Columns))
	columns = append(columns, parent...)
	columns = append(columns, t.Columns...)
	//
	return columns, nil
}

// Check the (flattened) columns of a single table for internal consistency,
// and check reference targets against the declared batch.
func checkColumns(index map[string]int, t *Table) []error {
	var (
		errs []error
		seen = make(map[string]bool, len(t.Columns))
	)
	//
	for _, c := range t.Columns {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("table %q has an unnamed column", t.Name))
			continue
		}
		//
		if seen[c.Name] {
			errs = append(errs, fmt.Errorf("duplicate column %q in table %q", c.Name, t.Name))
		}
		//
		seen[c.Name] = true
		// Reject flag bits which don't correspond to any known flag.
		if c.Flags&^Sorted != 0 {
			errs = append(errs, fmt.Errorf("column %q of table %q carries unknown flags", c.Name, t.Name))
		}
		// Sortedness requires a total order over the stored values.
		if c.Sorted() {
			switch {
			case c.Type.IsReference():
				errs = append(errs, fmt.Errorf("sorted column %q of table %q cannot be a table reference", c.Name, t.Name))
			case !c.Type.Kind().Numeric():
				errs = append(errs, fmt.Errorf("sorted column %q of table %q must be numeric", c.Name, t.Name))
			case c.Type.Nullable():
				errs = append(errs, fmt.Errorf("sorted column %q of table %q cannot be optional", c.Name, t.Name))
			}
		}
		//
		if target := c.Type.Target(); target != "" {
			if _, ok := index[target]; !ok {
				errs = append(errs, fmt.Errorf("column %q of table %q references unknown table %q", c.Name, t.Name, target))
			}
		}
		//
		if c.Access > LowPerfWrite {
			errs = append(errs, fmt.Errorf("column %q of table %q has invalid access class %d", c.Name, t.Name, c.Access))
		}
		//
		if c.Duration > PostFinalization {
			errs = append(errs, fmt.Errorf("column %q of table %q has invalid access duration %d", c.Name, t.Name, c.Duration))
		}
	}
	//
	return errs
}

// Sort map keys for deterministic reporting.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	//
	for k := range m {
		keys = append(keys, k)
	}
	//
	slices.Sort(keys)
	//
	return keys
}
