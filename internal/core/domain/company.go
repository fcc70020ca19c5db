package domain

import "time"

// Company is one entry of the source dataset, keyed by its name.
type Company struct {
	// Name uniquely identifies the company within a dataset.
	Name string

	// Sector is the economic sector. Nil when the source omits it.
	Sector *string

	// ControlType is the ownership-control model. Nil when the source omits it.
	ControlType *string

	// Facts holds the values extracted at company level.
	Facts Facts

	// Plans lists the incentive plans in declaration order.
	Plans []Plan
}

// Facts are the plan terms extracted for a company.
type Facts struct {
	// VestingYears is the vesting period in years. Nil means unknown.
	VestingYears *float64

	// MaxDilutionPct is the maximum dilution percentage. Nil means unknown.
	MaxDilutionPct *float64

	// ClawbackPresent reports a malus/clawback clause. Absent means false.
	ClawbackPresent bool
}

// Plan is one incentive plan declared by a company.
// Plan types act as a mapping key within a company.
type Plan struct {
	// Type is the plan-type name, e.g. "Stock Options".
	Type string

	// Documents are references to the source filings (usually URLs).
	Documents []string
}

// Dataset is the decoded source file, companies in file order.
type Dataset struct {
	Companies []Company
}

// PlanCount returns the total number of plans across all companies.
func (d *Dataset) PlanCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for i := range d.Companies {
		n += len(d.Companies[i].Plans)
	}
	return n
}

// SourceStamp identifies one state of a dataset source.
// Two equal stamps mean the source has not changed.
type SourceStamp struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// Equal reports whether two stamps describe the same source state.
func (s SourceStamp) Equal(other SourceStamp) bool {
	return s.Path == other.Path && s.ModTime.Equal(other.ModTime) && s.Size == other.Size
}

// Float returns a pointer to v. Convenient for building Facts literals.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}
