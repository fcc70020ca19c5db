// Package mcp provides an MCP (Model Context Protocol) server adapter for incentiva.
// It lets AI assistants query the plan table read-only: KPIs, rows, filter
// values and company dossiers.
package mcp

import "errors"

// ErrMissingDatasetService is returned when the dataset service is not provided.
var ErrMissingDatasetService = errors.New("mcp: dataset service is required")

// ErrMissingAnalyticsService is returned when the analytics service is not provided.
var ErrMissingAnalyticsService = errors.New("mcp: analytics service is required")
