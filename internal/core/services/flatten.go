package services

import (
	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// Flatten turns a dataset into one row per (company, plan) pair.
// Rows follow company order, then plan order within each company.
// Companies without plans produce no rows. Flatten does not modify ds and
// returns the same rows for the same input.
func Flatten(ds *domain.Dataset) []domain.PlanRow {
	rows := make([]domain.PlanRow, 0, ds.PlanCount())
	if ds == nil {
		return rows
	}

	for i := range ds.Companies {
		c := &ds.Companies[i]
		sector := orNotInformed(c.Sector)
		control := orNotInformed(c.ControlType)

		for j := range c.Plans {
			p := &c.Plans[j]
			rows = append(rows, domain.PlanRow{
				Company:        c.Name,
				Sector:         sector,
				ControlType:    control,
				PlanType:       p.Type,
				VestingYears:   c.Facts.VestingYears,
				MaxDilutionPct: c.Facts.MaxDilutionPct,
				Clawback:       c.Facts.ClawbackPresent,
				DocumentCount:  len(p.Documents),
				Documents:      p.Documents,
			})
		}
	}

	return rows
}

// orNotInformed resolves a missing attribute to the sentinel. An explicit
// empty string is kept as given.
func orNotInformed(v *string) string {
	if v == nil {
		return domain.NotInformed
	}
	return *v
}
