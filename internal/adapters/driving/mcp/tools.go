package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// FilterInput narrows the table. An omitted list leaves its dimension
// unrestricted; an empty list matches nothing.
type FilterInput struct {
	Sectors      []string `json:"sectors,omitempty" jsonschema:"keep only these sectors (omit for all)"`
	PlanTypes    []string `json:"plan_types,omitempty" jsonschema:"keep only these plan types (omit for all)"`
	ControlTypes []string `json:"control_types,omitempty" jsonschema:"keep only these control types (omit for all)"`
}

// Selection converts the input to a domain selection.
func (f *FilterInput) Selection() domain.Selection {
	var sel domain.Selection
	for _, dim := range []struct {
		d      domain.Dimension
		values []string
	}{
		{domain.DimensionSector, f.Sectors},
		{domain.DimensionPlanType, f.PlanTypes},
		{domain.DimensionControlType, f.ControlTypes},
	} {
		if dim.values != nil {
			sel = sel.With(dim.d, domain.NewValueSet(dim.values...))
		}
	}
	return sel
}

// SummaryInput is the input schema for the summary tool.
type SummaryInput struct {
	Filters FilterInput `json:"filters,omitempty" jsonschema:"optional filters"`
	Top     int         `json:"top,omitempty" jsonschema:"number of sectors in sector breakdowns (default from settings)"`
}

// SummaryOutput is the output schema for the summary tool.
type SummaryOutput struct {
	Summary        domain.Summary    `json:"summary"`
	TopSectors     []domain.Count    `json:"top_sectors"`
	PlanTypes      []domain.Count    `json:"plan_types"`
	Clawback       []domain.Count    `json:"clawback"`
	SectorClawback []domain.CrossTab `json:"sector_clawback"`
}

// RowsInput is the input schema for the rows tool.
type RowsInput struct {
	Filters FilterInput `json:"filters,omitempty" jsonschema:"optional filters"`
	Limit   int         `json:"limit,omitempty" jsonschema:"maximum number of rows to return (default 100)"`
}

// RowsOutput is the output schema for the rows tool.
type RowsOutput struct {
	Rows  []domain.PlanRow `json:"rows"`
	Total int              `json:"total"`
}

// FindInput is the input schema for the find_companies tool.
type FindInput struct {
	Query   string      `json:"query" jsonschema:"part of a company name; case and accents are ignored"`
	Filters FilterInput `json:"filters,omitempty" jsonschema:"optional filters"`
}

// FindOutput is the output schema for the find_companies tool.
type FindOutput struct {
	Companies []string `json:"companies"`
	Count     int      `json:"count"`
}

// CompanyInput is the input schema for the company tool.
type CompanyInput struct {
	Name string `json:"name" jsonschema:"exact company name as returned by find_companies"`
}

// OptionsInput is the input schema for the options tool.
type OptionsInput struct{}

// defaultRowLimit caps the rows tool when no limit is given.
const defaultRowLimit = 100

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summary",
		Description: "Headline KPIs, top sectors, plan-type and clawback distributions of the filtered plan table",
	}, s.handleSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rows",
		Description: "Flattened (company, plan) rows of the filtered plan table, in dataset order",
	}, s.handleRows)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_companies",
		Description: "Search company names",
	}, s.handleFindCompanies)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "company",
		Description: "A company's plans with vesting, dilution, clawback and source documents",
	}, s.handleCompany)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "options",
		Description: "The sectors, plan types and control types the filters accept",
	}, s.handleOptions)
}

// handleSummary handles the summary tool invocation.
func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	top := input.Top
	if top <= 0 {
		top = s.ports.TopN
	}

	a := s.ports.Analytics
	rows = a.Filter(rows, input.Filters.Selection())
	return nil, SummaryOutput{
		Summary:        a.Summarize(rows),
		TopSectors:     a.SectorCounts(rows, top),
		PlanTypes:      a.PlanTypeCounts(rows),
		Clawback:       a.ClawbackShare(rows),
		SectorClawback: a.SectorClawback(rows, top),
	}, nil
}

// handleRows handles the rows tool invocation.
func (s *Server) handleRows(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RowsInput,
) (*mcp.CallToolResult, RowsOutput, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, RowsOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultRowLimit
	}

	rows = s.ports.Analytics.Filter(rows, input.Filters.Selection())
	output := RowsOutput{Rows: rows, Total: len(rows)}
	if len(rows) > limit {
		output.Rows = rows[:limit]
	}
	if output.Rows == nil {
		output.Rows = []domain.PlanRow{}
	}
	return nil, output, nil
}

// handleFindCompanies handles the find_companies tool invocation.
func (s *Server) handleFindCompanies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, FindOutput{}, err
	}

	rows = s.ports.Analytics.Filter(rows, input.Filters.Selection())
	names := s.ports.Analytics.FindCompanies(rows, input.Query)
	return nil, FindOutput{Companies: names, Count: len(names)}, nil
}

// handleCompany handles the company tool invocation.
func (s *Server) handleCompany(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompanyInput,
) (*mcp.CallToolResult, domain.Dossier, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, domain.Dossier{}, err
	}

	dossier, err := s.ports.Analytics.Dossier(rows, input.Name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Dossier{}, fmt.Errorf("company %q: %w", input.Name, err)
		}
		return nil, domain.Dossier{}, err
	}
	return nil, *dossier, nil
}

// handleOptions handles the options tool invocation.
func (s *Server) handleOptions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ OptionsInput,
) (*mcp.CallToolResult, driving.Options, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, driving.Options{}, err
	}
	return nil, s.ports.Analytics.Options(rows), nil
}
