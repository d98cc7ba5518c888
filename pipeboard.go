// Package pipeboard provides an interactive analytics engine for
// sales-opportunity exports.
//
// Usage:
//
//	import "github.com/pipeboard-org/pipeboard/engine"
//
//	records := helpers.Parse(csvText)
//	rows := engine.BuildOpportunities(records)
//	st := engine.NewState()
//	st = engine.Reduce(st, engine.DatasetLoaded{FileName: "export.csv", Rows: rows})
//	st = engine.Reduce(st, engine.StageSelected{Stage: engine.Opt("Negotiation")})
//
// The engine holds an explicit application state (rows, filter criteria,
// derived aggregates and chart geometry) and advances it through pure
// reducer-style events: control changes, pointer moves, chart clicks.
// Rendering is a read-only projection — see the termview package for a
// terminal presenter and cmd/pipeboard for the CLI.
//
// The engine never calls any external service — all computation is local.
package pipeboard
