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

// Package winscope carries the table catalog for Android window tracing
// data: protolog messages, InputMethod dumps, SurfaceFlinger snapshots and
// transactions, ViewCapture snapshots, shell transitions and WindowManager
// state.  The catalog is expressed as plain schema declarations, alongside a
// typed facade over the compiled tables for ingestion code which prefers
// structs to cell maps.
package winscope

import "github.com/consensys/go-tracetables/pkg/table"

// Tables bundles the compiled winscope tables, one handle per table in the
// catalog.  All tables share one registry and hence one string pool.
type Tables struct {
	registry *table.Registry
	//
	ProtoLog                                 *table.Table
	InputMethodClients                       *table.Table
	InputMethodManagerService                *table.Table
	InputMethodService                       *table.Table
	SurfaceFlingerLayersSnapshot             *table.Table
	SurfaceFlingerLayer                      *table.Table
	SurfaceFlingerTransactions               *table.Table
	SurfaceFlingerTransaction                *table.Table
	SurfaceFlingerTransactionFlag            *table.Table
	ViewCapture                              *table.Table
	ViewCaptureView                          *table.Table
	ViewCaptureInternedData                  *table.Table
	WindowManagerShellTransitions            *table.Table
	WindowManagerShellTransitionHandlers     *table.Table
	WindowManagerShellTransitionParticipants *table.Table
	WindowManagerShellTransitionProtos       *table.Table
	WindowManager                            *table.Table
}

// NewTables compiles the winscope catalog and builds an empty table for
// each declaration.  The catalog is fixed, so compilation can only fail if
// the declarations themselves have been corrupted.
func NewTables() (*Tables, error) {
	registry, err := table.NewRegistry(Schemas())
	//
	if err != nil {
		return nil, err
	}
	//
	var (
		all = registry.Tables()
		//
		p = &Tables{
			registry:                                 registry,
			ProtoLog:                                 all[0],
			InputMethodClients:                       all[1],
			InputMethodManagerService:                all[2],
			InputMethodService:                       all[3],
			SurfaceFlingerLayersSnapshot:             all[4],
			SurfaceFlingerLayer:                      all[5],
			SurfaceFlingerTransactions:               all[6],
			SurfaceFlingerTransaction:                all[7],
			SurfaceFlingerTransactionFlag:            all[8],
			ViewCapture:                              all[9],
			ViewCaptureView:                          all[10],
			ViewCaptureInternedData:                  all[11],
			WindowManagerShellTransitions:            all[12],
			WindowManagerShellTransitionHandlers:     all[13],
			WindowManagerShellTransitionParticipants: all[14],
			WindowManagerShellTransitionProtos:       all[15],
			WindowManager:                            all[16],
		}
	)
	//
	return p, nil
}

// NewRegistry compiles the winscope catalog and returns the bare registry,
// for callers working with tables by name rather than through the facade.
func NewRegistry() (*table.Registry, error) {
	return table.NewRegistry(Schemas())
}

// Registry returns the registry holding every table of this facade.
func (p *Tables) Registry() *table.Registry {
	return p.registry
}

// Finalize moves every table out of the ingestion phase.
func (p *Tables) Finalize() {
	p.registry.FinalizeAll()
}
