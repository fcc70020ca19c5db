// Package sqlite stores table snapshots in a SQLite database.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A snapshot is one filtered plan table plus the selection
// and source it came from, so exported tables can be queried with any SQLite
// client.
//
// # Schema
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files.
//
//   - snapshots: one row per export (id, name, source, filters, row_count)
//   - snapshot_rows: the exported plan rows, in table order
//
// # Data Location
//
// By default, the database is stored at ~/.incentiva/snapshots.db
package sqlite
