package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// filterFlags maps each dimension to its flag name.
var filterFlags = []struct {
	dim  domain.Dimension
	name string
}{
	{domain.DimensionSector, "sector"},
	{domain.DimensionPlanType, "plan-type"},
	{domain.DimensionControlType, "control"},
}

// addFilterFlags registers the repeatable dimension filters on cmd.
func addFilterFlags(cmd *cobra.Command) {
	for _, f := range filterFlags {
		cmd.Flags().StringArray(f.name, nil,
			"keep only rows whose "+strings.ToLower(f.dim.Label())+" is this value (repeatable; empty selects none)")
	}
}

// selectionFromFlags builds a selection from the filter flags. A flag that
// was not given leaves its dimension unrestricted; --sector="" selects none.
func selectionFromFlags(cmd *cobra.Command) (domain.Selection, error) {
	var sel domain.Selection
	for _, f := range filterFlags {
		flag := cmd.Flags().Lookup(f.name)
		if flag == nil || !flag.Changed {
			continue
		}
		values, err := cmd.Flags().GetStringArray(f.name)
		if err != nil {
			return sel, err
		}
		set := domain.NewValueSet()
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				set[v] = struct{}{}
			}
		}
		sel = sel.With(f.dim, set)
	}
	return sel, nil
}

// describeSelection renders the active filters for headers, e.g.
// "Sector: Energy, Banking". It returns "" when nothing is filtered.
func describeSelection(sel domain.Selection) string {
	filters := domain.SelectionFilters(sel)
	parts := make([]string, 0, len(filters))
	for _, d := range domain.Dimensions() {
		values, ok := filters[d]
		if !ok {
			continue
		}
		if len(values) == 0 {
			parts = append(parts, d.Label()+": (none)")
			continue
		}
		parts = append(parts, d.Label()+": "+strings.Join(values, ", "))
	}
	return strings.Join(parts, "; ")
}
