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

import "github.com/consensys/go-tracetables/pkg/schema"

// Phase identifies where a table is in its ingestion lifecycle.  Tables begin
// open, accept appended rows, and are then finalized exactly once.  The phase
// only ever moves forwards.
type Phase uint8

const (
	// Open is the ingestion phase, during which rows are appended.
	Open Phase = iota
	// Closed is the post-finalization phase.  No further rows can be
	// appended, and only columns writable post-finalization accept updates.
	Closed
)

// String produces a human-readable form of this phase.
func (p Phase) String() string {
	if p == Open {
		return "open"
	}
	//
	return "closed"
}

// CanWrite determines whether an in-place cell update is permitted for a
// given column in a given lifecycle phase.  Read-only columns never accept
// updates.  Writable columns scoped to the whole lifetime accept updates in
// either phase, whilst those scoped post-finalization accept updates only
// once the table is closed.  Appending rows is not governed by this matrix,
// since appends populate read-only columns as well.
func CanWrite(column schema.Column, phase Phase) bool {
	if column.Access != schema.LowPerfWrite {
		return false
	}
	//
	switch column.Duration {
	case schema.PostFinalization:
		return phase == Closed
	default:
		return true
	}
}
