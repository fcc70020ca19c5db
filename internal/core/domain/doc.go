// Package domain defines the core entities for incentiva.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Company, Plan, Facts: the nested source records
//   - PlanRow: one flattened (company, plan) pair
//   - Selection: the three category filters
//   - Summary, Count, CrossTab, Dossier: aggregate results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
