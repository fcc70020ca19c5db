package driving

import "github.com/custodia-labs/incentiva/internal/core/domain"

// Options lists the distinct values observed per filter dimension.
type Options struct {
	Sectors      []string `json:"sectors"`
	PlanTypes    []string `json:"plan_types"`
	ControlTypes []string `json:"control_types"`
}

// Values returns the option list for a dimension.
func (o *Options) Values(d domain.Dimension) []string {
	switch d {
	case domain.DimensionSector:
		return o.Sectors
	case domain.DimensionPlanType:
		return o.PlanTypes
	case domain.DimensionControlType:
		return o.ControlTypes
	default:
		return nil
	}
}

// AnalyticsService filters and aggregates flattened tables.
// Every method is a pure function of its arguments.
type AnalyticsService interface {
	// Options returns the distinct values per dimension, collated.
	Options(rows []domain.PlanRow) Options

	// Filter returns the rows matching the selection, in order.
	Filter(rows []domain.PlanRow, sel domain.Selection) []domain.PlanRow

	// Summarize computes the headline KPIs.
	Summarize(rows []domain.PlanRow) domain.Summary

	// SectorCounts counts rows per sector, largest first, at most topN.
	SectorCounts(rows []domain.PlanRow, topN int) []domain.Count

	// PlanTypeCounts counts rows per plan type, largest first.
	PlanTypeCounts(rows []domain.PlanRow) []domain.Count

	// ClawbackShare counts rows with and without clawback.
	ClawbackShare(rows []domain.PlanRow) []domain.Count

	// SectorClawback splits the topN sectors by clawback presence.
	SectorClawback(rows []domain.PlanRow, topN int) []domain.CrossTab

	// VestingDilution returns rows with both vesting and dilution known.
	VestingDilution(rows []domain.PlanRow) []domain.Point

	// VestingByControl describes known vesting values per control type.
	VestingByControl(rows []domain.PlanRow) []domain.Distribution

	// Companies returns the distinct company names, collated.
	Companies(rows []domain.PlanRow) []string

	// FindCompanies returns company names containing query, ignoring case
	// and accents.
	FindCompanies(rows []domain.PlanRow, query string) []string

	// Dossier returns one company's plans.
	// Returns domain.ErrNotFound if the company has no rows.
	Dossier(rows []domain.PlanRow, company string) (*domain.Dossier, error)
}
