// Package services implements the driving port interfaces.
// Services contain the core logic (flattening, filtering, aggregation)
// and orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO. The only external dependency is
// golang.org/x/text, used for locale-aware ordering and accent folding.
package services
