package tui

import "errors"

// ErrMissingDatasetService is returned when the dataset service is not provided.
var ErrMissingDatasetService = errors.New("tui: dataset service is required")

// ErrMissingAnalyticsService is returned when the analytics service is not provided.
var ErrMissingAnalyticsService = errors.New("tui: analytics service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
