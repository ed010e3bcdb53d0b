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
package winscope

import "github.com/consensys/go-tracetables/pkg/table"

// Typed rows for each table in the catalog, with optional columns held as
// pointers where nil means null.  Each AppendX helper translates its row
// into cells and appends it, returning the index of the new row.

// ProtoLogRow is one decoded protolog message.
type ProtoLogRow struct {
	Ts         int64
	Level      string
	Tag        string
	Message    string
	Stacktrace string
	Location   string
}

// AppendProtoLog appends a protolog message.
func (p *Tables) AppendProtoLog(row ProtoLogRow) (uint32, error) {
	return p.ProtoLog.AppendRow(map[string]table.Value{
		"ts":         table.Int64(row.Ts),
		"level":      table.String(row.Level),
		"tag":        table.String(row.Tag),
		"message":    table.String(row.Message),
		"stacktrace": table.String(row.Stacktrace),
		"location":   table.String(row.Location),
	})
}

// SnapshotRow is the common shape of the dump and snapshot tables: a sorted
// timestamp plus optional arg set and raw proto ids.
type SnapshotRow struct {
	Ts            int64
	ArgSetId      *uint32
	Base64ProtoId *uint32
}

// Translate a snapshot row into cells.
func snapshotCells(row SnapshotRow) map[string]table.Value {
	return map[string]table.Value{
		"ts":              table.Int64(row.Ts),
		"arg_set_id":      optUint32(row.ArgSetId),
		"base64_proto_id": optUint32(row.Base64ProtoId),
	}
}

// AppendInputMethodClients appends an InputMethod clients dump.
func (p *Tables) AppendInputMethodClients(row SnapshotRow) (uint32, error) {
	return p.InputMethodClients.AppendRow(snapshotCells(row))
}

// AppendInputMethodManagerService appends an InputMethod manager service
// dump.
func (p *Tables) AppendInputMethodManagerService(row SnapshotRow) (uint32, error) {
	return p.InputMethodManagerService.AppendRow(snapshotCells(row))
}

// AppendInputMethodService appends an InputMethod service dump.
func (p *Tables) AppendInputMethodService(row SnapshotRow) (uint32, error) {
	return p.InputMethodService.AppendRow(snapshotCells(row))
}

// AppendSurfaceFlingerLayersSnapshot appends a SurfaceFlinger layers
// snapshot.
func (p *Tables) AppendSurfaceFlingerLayersSnapshot(row SnapshotRow) (uint32, error) {
	return p.SurfaceFlingerLayersSnapshot.AppendRow(snapshotCells(row))
}

// AppendViewCapture appends a ViewCapture snapshot.
func (p *Tables) AppendViewCapture(row SnapshotRow) (uint32, error) {
	return p.ViewCapture.AppendRow(snapshotCells(row))
}

// AppendWindowManager appends a WindowManager state snapshot.
func (p *Tables) AppendWindowManager(row SnapshotRow) (uint32, error) {
	return p.WindowManager.AppendRow(snapshotCells(row))
}

// SurfaceFlingerLayerRow is one layer within a SurfaceFlinger snapshot.
type SurfaceFlingerLayerRow struct {
	SnapshotId    uint32
	ArgSetId      *uint32
	Base64ProtoId *uint32
}

// AppendSurfaceFlingerLayer appends a SurfaceFlinger layer.
func (p *Tables) AppendSurfaceFlingerLayer(row SurfaceFlingerLayerRow) (uint32, error) {
	return p.SurfaceFlingerLayer.AppendRow(map[string]table.Value{
		"snapshot_id":     table.Uint32(row.SnapshotId),
		"arg_set_id":      optUint32(row.ArgSetId),
		"base64_proto_id": optUint32(row.Base64ProtoId),
	})
}

// SurfaceFlingerTransactionsRow is one commit of SurfaceFlinger
// transactions.
type SurfaceFlingerTransactionsRow struct {
	Ts            int64
	ArgSetId      *uint32
	Base64ProtoId *uint32
	VsyncId       *int64
}

// AppendSurfaceFlingerTransactions appends a transactions commit.
func (p *Tables) AppendSurfaceFlingerTransactions(row SurfaceFlingerTransactionsRow) (uint32, error) {
	return p.SurfaceFlingerTransactions.AppendRow(map[string]table.Value{
		"ts":              table.Int64(row.Ts),
		"arg_set_id":      optUint32(row.ArgSetId),
		"base64_proto_id": optUint32(row.Base64ProtoId),
		"vsync_id":        optInt64(row.VsyncId),
	})
}

// SurfaceFlingerTransactionRow is one transaction within a commit.
type SurfaceFlingerTransactionRow struct {
	SnapshotId      uint32
	ArgSetId        *uint32
	Base64ProtoId   *uint32
	TransactionId   *int64
	Pid             *uint32
	Uid             *uint32
	LayerId         *uint32
	DisplayId       *uint32
	FlagsId         *uint32
	TransactionType *string
}

// AppendSurfaceFlingerTransaction appends an individual transaction.
func (p *Tables) AppendSurfaceFlingerTransaction(row SurfaceFlingerTransactionRow) (uint32, error) {
	return p.SurfaceFlingerTransaction.AppendRow(map[string]table.Value{
		"snapshot_id":      table.Uint32(row.SnapshotId),
		"arg_set_id":       optUint32(row.ArgSetId),
		"base64_proto_id":  optUint32(row.Base64ProtoId),
		"transaction_id":   optInt64(row.TransactionId),
		"pid":              optUint32(row.Pid),
		"uid":              optUint32(row.Uid),
		"layer_id":         optUint32(row.LayerId),
		"display_id":       optUint32(row.DisplayId),
		"flags_id":         optUint32(row.FlagsId),
		"transaction_type": optString(row.TransactionType),
	})
}

// SurfaceFlingerTransactionFlagRow translates one flags_id into a flag
// string.
type SurfaceFlingerTransactionFlagRow struct {
	FlagsId *uint32
	Flag    *string
}

// AppendSurfaceFlingerTransactionFlag appends a flag translation.
func (p *Tables) AppendSurfaceFlingerTransactionFlag(row SurfaceFlingerTransactionFlagRow) (uint32, error) {
	return p.SurfaceFlingerTransactionFlag.AppendRow(map[string]table.Value{
		"flags_id": optUint32(row.FlagsId),
		"flag":     optString(row.Flag),
	})
}

// ViewCaptureViewRow is one captured view within a ViewCapture snapshot.
type ViewCaptureViewRow struct {
	SnapshotId    uint32
	ArgSetId      *uint32
	Base64ProtoId *uint32
}

// AppendViewCaptureView appends a captured view.
func (p *Tables) AppendViewCaptureView(row ViewCaptureViewRow) (uint32, error) {
	return p.ViewCaptureView.AppendRow(map[string]table.Value{
		"snapshot_id":     table.Uint32(row.SnapshotId),
		"arg_set_id":      optUint32(row.ArgSetId),
		"base64_proto_id": optUint32(row.Base64ProtoId),
	})
}

// ViewCaptureInternedDataRow maps one interned id back to its string value.
type ViewCaptureInternedDataRow struct {
	Base64ProtoId   uint32
	FlatKey         string
	Iid             int64
	DeinternedValue string
}

// AppendViewCaptureInternedData appends an interned data mapping.
func (p *Tables) AppendViewCaptureInternedData(row ViewCaptureInternedDataRow) (uint32, error) {
	return p.ViewCaptureInternedData.AppendRow(map[string]table.Value{
		"base64_proto_id":  table.Uint32(row.Base64ProtoId),
		"flat_key":         table.String(row.FlatKey),
		"iid":              table.Int64(row.Iid),
		"deinterned_value": table.String(row.DeinternedValue),
	})
}

// WindowManagerShellTransitionsRow is one shell transition.
type WindowManagerShellTransitionsRow struct {
	Ts             int64
	TransitionId   int64
	ArgSetId       *uint32
	TransitionType *uint32
	SendTimeNs     *int64
	DispatchTimeNs *int64
	DurationNs     *int64
	Handler        *int64
	Status         *string
	Flags          *uint32
}

// AppendWindowManagerShellTransitions appends a shell transition.
func (p *Tables) AppendWindowManagerShellTransitions(row WindowManagerShellTransitionsRow) (uint32, error) {
	return p.WindowManagerShellTransitions.AppendRow(map[string]table.Value{
		"ts":               table.Int64(row.Ts),
		"transition_id":    table.Int64(row.TransitionId),
		"arg_set_id":       optUint32(row.ArgSetId),
		"transition_type":  optUint32(row.TransitionType),
		"send_time_ns":     optInt64(row.SendTimeNs),
		"dispatch_time_ns": optInt64(row.DispatchTimeNs),
		"duration_ns":      optInt64(row.DurationNs),
		"handler":          optInt64(row.Handler),
		"status":           optString(row.Status),
		"flags":            optUint32(row.Flags),
	})
}

// WindowManagerShellTransitionHandlersRow names one shell transition
// handler.
type WindowManagerShellTransitionHandlersRow struct {
	HandlerId     int64
	HandlerName   string
	Base64ProtoId *uint32
}

// AppendWindowManagerShellTransitionHandlers appends a handler.
func (p *Tables) AppendWindowManagerShellTransitionHandlers(row WindowManagerShellTransitionHandlersRow) (uint32, error) {
	return p.WindowManagerShellTransitionHandlers.AppendRow(map[string]table.Value{
		"handler_id":      table.Int64(row.HandlerId),
		"handler_name":    table.String(row.HandlerName),
		"base64_proto_id": optUint32(row.Base64ProtoId),
	})
}

// WindowManagerShellTransitionParticipantsRow records one layer or window
// participating in a transition.
type WindowManagerShellTransitionParticipantsRow struct {
	TransitionId int64
	LayerId      *uint32
	WindowId     *uint32
}

// AppendWindowManagerShellTransitionParticipants appends a participant.
func (p *Tables) AppendWindowManagerShellTransitionParticipants(row WindowManagerShellTransitionParticipantsRow) (uint32, error) {
	return p.WindowManagerShellTransitionParticipants.AppendRow(map[string]table.Value{
		"transition_id": table.Int64(row.TransitionId),
		"layer_id":      optUint32(row.LayerId),
		"window_id":     optUint32(row.WindowId),
	})
}

// WindowManagerShellTransitionProtosRow holds the raw proto of one
// transition.
type WindowManagerShellTransitionProtosRow struct {
	TransitionId  int64
	Base64ProtoId *uint32
}

// AppendWindowManagerShellTransitionProtos appends a raw transition proto.
func (p *Tables) AppendWindowManagerShellTransitionProtos(row WindowManagerShellTransitionProtosRow) (uint32, error) {
	return p.WindowManagerShellTransitionProtos.AppendRow(map[string]table.Value{
		"transition_id":   table.Int64(row.TransitionId),
		"base64_proto_id": optUint32(row.Base64ProtoId),
	})
}

// ============================================================================
// Helpers
// ============================================================================

func optInt64(v *int64) table.Value {
	if v == nil {
		return table.Null()
	}
	//
	return table.Int64(*v)
}

func optUint32(v *uint32) table.Value {
	if v == nil {
		return table.Null()
	}
	//
	return table.Uint32(*v)
}

func optString(v *string) table.Value {
	if v == nil {
		return table.Null()
	}
	//
	return table.String(*v)
}
