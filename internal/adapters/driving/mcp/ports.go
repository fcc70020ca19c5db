package mcp

import (
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dataset loads the plan table.
	Dataset driving.DatasetService

	// Analytics filters rows and computes aggregates.
	Analytics driving.AnalyticsService

	// TopN is the default number of sectors in sector breakdowns.
	TopN int
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Analytics == nil {
		return ErrMissingAnalyticsService
	}
	return nil
}
