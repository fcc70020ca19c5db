// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DatasetReader: Reads and decodes the dataset file
//   - TableCache: Holds the flattened table for one source state
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ChangeNotifier: Reports dataset file changes. Without it, the
//     dashboard only reloads on request.
//   - SnapshotStore: Persists filtered tables. Without it, export is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
