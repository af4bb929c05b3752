// Package entities defines the static dispatch tables for the Axpert
// protocol: which fields each query reports, how raw wire text becomes
// typed values, and how settings commands are assembled from arguments.
//
// Everything here is pure data plus small resolution functions. The
// tables are built once at process start and shared read-only by all
// requests; there is no I/O in this package.
//
// # Entities
//
// An Entity describes one named field: its description, coercion rule,
// optional display unit and the inverter's own program number where one
// exists. The Entities table is keyed by short stable names (grid_v,
// bat_cap, ...) used in query results, rendered output and published
// topics.
//
// # Queries
//
// A Query either lists entity keys in reply order (the common case,
// zipped positionally with the space-separated payload) or carries a
// custom decoder for structured replies:
//
//   - QFLAG replies are an "E<chars>D<chars>" flag string decoded by
//     ParseDeviceFlags
//   - QPIWS replies are a 32-character warning bitfield decoded by
//     ParseWarnings
//
// Validate checks at startup that every referenced key resolves.
//
// # Commands
//
// A Command pairs per-argument conversion and validation rules with a
// mnemonic generation rule. BuildMnemonic runs the full pipeline:
//
//	cmd := entities.Commands["POP"]
//	mnemonic, err := cmd.BuildMnemonic([]string{"2"}) // "POP02"
package entities
