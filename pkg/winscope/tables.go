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

import "github.com/consensys/go-tracetables/pkg/schema"

// ProtoLogSchema declares the protolog table, holding decoded protolog
// messages.
func ProtoLogSchema() schema.Table {
	return schema.Table{
		Name: "protolog",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted, Access: schema.LowPerfWrite},
			{Name: "level", Type: schema.String(), Access: schema.LowPerfWrite},
			{Name: "tag", Type: schema.String(), Access: schema.LowPerfWrite},
			{Name: "message", Type: schema.String(), Access: schema.LowPerfWrite},
			{Name: "stacktrace", Type: schema.String(), Access: schema.LowPerfWrite},
			{Name: "location", Type: schema.String(), Access: schema.LowPerfWrite},
		},
		Doc: schema.Doc{
			Table: "Protolog",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":         "The timestamp the log message was sent",
				"level":      "The log level of the protolog message",
				"tag":        "The log tag of the protolog message",
				"message":    "The protolog message",
				"stacktrace": "Stacktrace captured at the message's logpoint",
				"location":   "The location of the logpoint (only for processed messages)",
			},
		},
	}
}

// InputMethodClientsSchema declares the InputMethod clients dump table.
func InputMethodClientsSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_inputmethod_clients",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "InputMethod clients",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "The timestamp the dump was triggered",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// InputMethodManagerServiceSchema declares the InputMethod manager service
// dump table.
func InputMethodManagerServiceSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_inputmethod_manager_service",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "InputMethod manager service",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "The timestamp the dump was triggered",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// InputMethodServiceSchema declares the InputMethod service dump table.
func InputMethodServiceSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_inputmethod_service",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "InputMethod service",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "The timestamp the dump was triggered",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// SurfaceFlingerLayersSnapshotSchema declares the SurfaceFlinger layers
// snapshot table.  Each row is one snapshot; the layers it contains live in
// the surfaceflinger_layer table and reference back here.
func SurfaceFlingerLayersSnapshotSchema() schema.Table {
	return schema.Table{
		Name: "surfaceflinger_layers_snapshot",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "SurfaceFlinger layers snapshot",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "Timestamp of the snapshot",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// SurfaceFlingerLayerSchema declares the SurfaceFlinger layer table.
func SurfaceFlingerLayerSchema() schema.Table {
	return schema.Table{
		Name: "surfaceflinger_layer",
		Columns: []schema.Column{
			{Name: "snapshot_id", Type: schema.TableId("surfaceflinger_layers_snapshot")},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "SurfaceFlinger layer",
			Group: "Winscope",
			Columns: map[string]string{
				"snapshot_id":     "The snapshot that generated this layer",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// SurfaceFlingerTransactionsSchema declares the SurfaceFlinger transactions
// table.  Each row is one commit containing a set of transactions.
func SurfaceFlingerTransactionsSchema() schema.Table {
	return schema.Table{
		Name: "surfaceflinger_transactions",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
			{Name: "vsync_id", Type: schema.Optional(schema.Int64())},
		},
		Doc: schema.Doc{
			Table: "SurfaceFlinger transactions. Each row contains a set of transactions that SurfaceFlinger committed together.",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "Timestamp of the transactions commit",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
				"vsync_id":        "Vsync id taken from raw proto message",
			},
		},
	}
}

// SurfaceFlingerTransactionSchema declares the table of individual
// SurfaceFlinger transactions, each referencing the commit it was part of.
func SurfaceFlingerTransactionSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_surfaceflinger_transaction",
		Columns: []schema.Column{
			{Name: "snapshot_id", Type: schema.TableId("surfaceflinger_transactions")},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
			{Name: "transaction_id", Type: schema.Optional(schema.Int64())},
			{Name: "pid", Type: schema.Optional(schema.Uint32())},
			{Name: "uid", Type: schema.Optional(schema.Uint32())},
			{Name: "layer_id", Type: schema.Optional(schema.Uint32())},
			{Name: "display_id", Type: schema.Optional(schema.Uint32())},
			{Name: "flags_id", Type: schema.Optional(schema.Uint32())},
			{Name: "transaction_type", Type: schema.Optional(schema.String())},
		},
		Doc: schema.Doc{
			Table: "SurfaceFlinger transaction",
			Group: "Winscope",
			Columns: map[string]string{
				"snapshot_id":      "The snapshot that generated this transaction",
				"arg_set_id":       "Extra args parsed from the proto message",
				"base64_proto_id":  "String id for raw proto message",
				"transaction_id":   "Transaction id taken from raw proto message",
				"pid":              "Pid taken from raw proto message",
				"uid":              "Uid taken from raw proto message",
				"layer_id":         "Layer id taken from raw proto message",
				"display_id":       "Display id taken from raw proto message",
				"flags_id":         "Flags id used to retrieve associated flags from __intrinsic_surfaceflinger_transaction_flag",
				"transaction_type": "Transaction type",
			},
		},
	}
}

// SurfaceFlingerTransactionFlagSchema declares the table translating
// transaction flags_id values into flag strings.
func SurfaceFlingerTransactionFlagSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_surfaceflinger_transaction_flag",
		Columns: []schema.Column{
			{Name: "flags_id", Type: schema.Optional(schema.Uint32())},
			{Name: "flag", Type: schema.Optional(schema.String())},
		},
		Doc: schema.Doc{
			Table: "SurfaceFlinger transaction flags",
			Group: "Winscope",
			Columns: map[string]string{
				"flags_id": "The flags_id corresponding to a row in __intrinsic_surfaceflinger_transaction",
				"flag":     "The translated flag string",
			},
		},
	}
}

// ViewCaptureSchema declares the ViewCapture snapshot table.
func ViewCaptureSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_viewcapture",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "ViewCapture",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "The timestamp the views were captured",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// ViewCaptureViewSchema declares the table of individual captured views.
// Note the doc entry keyed by the empty string: it names no declared column,
// which compilation reports as a warning rather than an error.
func ViewCaptureViewSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_viewcapture_view",
		Columns: []schema.Column{
			{Name: "snapshot_id", Type: schema.TableId("__intrinsic_viewcapture")},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "ViewCapture view",
			Group: "Winscope",
			Columns: map[string]string{
				"snapshot_id": "The snapshot that generated this view",
				"arg_set_id":  "Extra args parsed from the proto message",
				"":            "String id for raw proto message",
			},
		},
	}
}

// ViewCaptureInternedDataSchema declares the ViewCapture interned data
// table, mapping interned ids back to their string values.
func ViewCaptureInternedDataSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_viewcapture_interned_data",
		Columns: []schema.Column{
			{Name: "base64_proto_id", Type: schema.Uint32(), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
			{Name: "flat_key", Type: schema.String()},
			{Name: "iid", Type: schema.Int64()},
			{Name: "deinterned_value", Type: schema.String()},
		},
		Doc: schema.Doc{
			Table: "ViewCapture interned data",
			Group: "Winscope",
			Columns: map[string]string{
				"base64_proto_id":  "String id for raw proto message",
				"flat_key":         "Proto field name",
				"iid":              "Int value set on proto",
				"deinterned_value": "Corresponding string value",
			},
		},
	}
}

// WindowManagerShellTransitionsSchema declares the shell transitions table.
// Unusually, its sorted column is the transition id rather than the
// timestamp, since transitions are recorded as their handlers report them.
func WindowManagerShellTransitionsSchema() schema.Table {
	return schema.Table{
		Name: "window_manager_shell_transitions",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Access: schema.LowPerfWrite},
			{Name: "transition_id", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "transition_type", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "send_time_ns", Type: schema.Optional(schema.Int64()), Access: schema.LowPerfWrite},
			{Name: "dispatch_time_ns", Type: schema.Optional(schema.Int64()), Access: schema.LowPerfWrite},
			{Name: "duration_ns", Type: schema.Optional(schema.Int64()), Access: schema.LowPerfWrite},
			{Name: "handler", Type: schema.Optional(schema.Int64()), Access: schema.LowPerfWrite},
			{Name: "status", Type: schema.Optional(schema.String()), Access: schema.LowPerfWrite},
			{Name: "flags", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
		},
		Doc: schema.Doc{
			Table: "Window Manager Shell Transitions",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":               "The timestamp the transition started playing - either dispatch time or send time",
				"transition_id":    "The id of the transition",
				"arg_set_id":       "Extra args parsed from the proto message",
				"transition_type":  "The type of the transition",
				"send_time_ns":     "Transition send time",
				"dispatch_time_ns": "Transition dispatch time",
				"duration_ns":      "Transition duration",
				"handler":          "Handler id",
				"status":           "Transition status",
				"flags":            "Transition flags",
			},
		},
	}
}

// WindowManagerShellTransitionHandlersSchema declares the table of shell
// transition handlers.
func WindowManagerShellTransitionHandlersSchema() schema.Table {
	return schema.Table{
		Name: "window_manager_shell_transition_handlers",
		Columns: []schema.Column{
			{Name: "handler_id", Type: schema.Int64()},
			{Name: "handler_name", Type: schema.String()},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "Window Manager Shell Transition Handlers",
			Group: "Winscope",
			Columns: map[string]string{
				"handler_id":      "The id of the handler",
				"handler_name":    "The name of the handler",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// WindowManagerShellTransitionParticipantsSchema declares the table of
// layers and windows participating in shell transitions.
func WindowManagerShellTransitionParticipantsSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_window_manager_shell_transition_participants",
		Columns: []schema.Column{
			{Name: "transition_id", Type: schema.Int64()},
			{Name: "layer_id", Type: schema.Optional(schema.Uint32())},
			{Name: "window_id", Type: schema.Optional(schema.Uint32())},
		},
		Doc: schema.Doc{
			Table: "Window Manager Shell Transition Participants",
			Group: "Winscope",
			Columns: map[string]string{
				"transition_id": "Transition id",
				"layer_id":      "Id of layer participant",
				"window_id":     "Id of window participant",
			},
		},
	}
}

// WindowManagerShellTransitionProtosSchema declares the table of raw shell
// transition protos, populated only once ingestion has finished.
func WindowManagerShellTransitionProtosSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_window_manager_shell_transition_protos",
		Columns: []schema.Column{
			{Name: "transition_id", Type: schema.Int64(), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "Window Manager Shell Transition Protos",
			Group: "Winscope",
			Columns: map[string]string{
				"transition_id":   "The id of the transition",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// WindowManagerSchema declares the WindowManager state snapshot table,
// published to queries under the windowmanager view alias.
func WindowManagerSchema() schema.Table {
	return schema.Table{
		Name: "__intrinsic_windowmanager",
		View: "windowmanager",
		Columns: []schema.Column{
			{Name: "ts", Type: schema.Int64(), Flags: schema.Sorted},
			{Name: "arg_set_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite},
			{Name: "base64_proto_id", Type: schema.Optional(schema.Uint32()), Access: schema.LowPerfWrite,
				Duration: schema.PostFinalization},
		},
		Doc: schema.Doc{
			Table: "WindowManager",
			Group: "Winscope",
			Columns: map[string]string{
				"ts":              "The timestamp the state snapshot was captured",
				"arg_set_id":      "Extra args parsed from the proto message",
				"base64_proto_id": "String id for raw proto message",
			},
		},
	}
}

// Schemas returns the declarations of every winscope table, in catalog
// order.
func Schemas() []schema.Table {
	return []schema.Table{
		ProtoLogSchema(),
		InputMethodClientsSchema(),
		InputMethodManagerServiceSchema(),
		InputMethodServiceSchema(),
		SurfaceFlingerLayersSnapshotSchema(),
		SurfaceFlingerLayerSchema(),
		SurfaceFlingerTransactionsSchema(),
		SurfaceFlingerTransactionSchema(),
		SurfaceFlingerTransactionFlagSchema(),
		ViewCaptureSchema(),
		ViewCaptureViewSchema(),
		ViewCaptureInternedDataSchema(),
		WindowManagerShellTransitionsSchema(),
		WindowManagerShellTransitionHandlersSchema(),
		WindowManagerShellTransitionParticipantsSchema(),
		WindowManagerShellTransitionProtosSchema(),
		WindowManagerSchema(),
	}
}
