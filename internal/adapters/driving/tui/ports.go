// Package tui provides the interactive incentive-plan dashboard.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dataset loads the plan table and reports file changes.
	Dataset driving.DatasetService

	// Analytics filters rows and computes every aggregate.
	Analytics driving.AnalyticsService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService

	// TopN is the number of sectors shown in sector charts.
	TopN int
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	dataset driving.DatasetService,
	analytics driving.AnalyticsService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Dataset:   dataset,
		Analytics: analytics,
		Settings:  settings,
		TopN:      domain.DefaultTopN,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Analytics == nil {
		return ErrMissingAnalyticsService
	}
	return nil
}
