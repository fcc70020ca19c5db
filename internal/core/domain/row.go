package domain

// NotInformed replaces a sector or control type the source left out.
const NotInformed = "Not Informed"

// Clawback labels, as the dataset's audience reads them.
const (
	ClawbackYes = "Sim"
	ClawbackNo  = "Não"
)

// PlanRow is one flattened (company, plan) pair. It is the unit the
// filter engine and the aggregator work on.
type PlanRow struct {
	Company        string   `json:"company"`
	Sector         string   `json:"sector"`
	ControlType    string   `json:"control_type"`
	PlanType       string   `json:"plan_type"`
	VestingYears   *float64 `json:"vesting_years"`
	MaxDilutionPct *float64 `json:"max_dilution_pct"`
	Clawback       bool     `json:"clawback"`
	DocumentCount  int      `json:"document_count"`

	// Documents is shared with the source plan. Treat as read-only.
	Documents []string `json:"documents"`
}

// ClawbackLabel returns "Sim" or "Não" for the row's clawback flag.
func (r *PlanRow) ClawbackLabel() string {
	return ClawbackLabel(r.Clawback)
}

// ClawbackLabel maps a clawback flag to its display label.
func ClawbackLabel(present bool) string {
	if present {
		return ClawbackYes
	}
	return ClawbackNo
}
