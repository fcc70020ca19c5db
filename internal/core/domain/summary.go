package domain

import "fmt"

// Unavailable is shown in place of a metric that has no known inputs.
const Unavailable = "N/A"

// Metric is a numeric aggregate that may be unavailable.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Format renders the metric with the given verb, or Unavailable.
func (m Metric) Format(format string) string {
	if !m.Valid {
		return Unavailable
	}
	return fmt.Sprintf(format, m.Value)
}

// Summary holds the headline KPIs of a filtered table.
type Summary struct {
	// Companies is the number of distinct companies.
	Companies int `json:"companies"`

	// Plans is the number of rows.
	Plans int `json:"plans"`

	// MeanDilution is the mean of known max-dilution values.
	MeanDilution Metric `json:"mean_dilution"`

	// ClawbackCount is the number of rows with a clawback clause.
	ClawbackCount int `json:"clawback_count"`

	// ClawbackPct is ClawbackCount over Plans, in percent. 0 when Plans is 0.
	ClawbackPct float64 `json:"clawback_pct"`
}

// Count is one bucket of a frequency distribution.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CrossTab splits one sector's rows by clawback presence.
type CrossTab struct {
	Sector          string `json:"sector"`
	WithClawback    int    `json:"with_clawback"`
	WithoutClawback int    `json:"without_clawback"`
}

// Total returns the number of rows in the sector.
func (c CrossTab) Total() int {
	return c.WithClawback + c.WithoutClawback
}

// Point is one company plan plotted as vesting against dilution.
type Point struct {
	Company        string  `json:"company"`
	PlanType       string  `json:"plan_type"`
	Sector         string  `json:"sector"`
	ControlType    string  `json:"control_type"`
	VestingYears   float64 `json:"vesting_years"`
	MaxDilutionPct float64 `json:"max_dilution_pct"`
}

// Distribution describes known values of one group as box-plot statistics.
type Distribution struct {
	Group  string  `json:"group"`
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Dossier is the drill-down view of a single company.
type Dossier struct {
	Company     string    `json:"company"`
	Sector      string    `json:"sector"`
	ControlType string    `json:"control_type"`
	Plans       []PlanRow `json:"plans"`
}

// DocumentCount returns the number of documents across all plans.
func (d *Dossier) DocumentCount() int {
	n := 0
	for i := range d.Plans {
		n += d.Plans[i].DocumentCount
	}
	return n
}
