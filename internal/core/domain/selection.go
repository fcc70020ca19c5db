package domain

// Dimension names one of the three filterable row attributes.
type Dimension string

// Filterable dimensions.
const (
	DimensionSector      Dimension = "sector"
	DimensionPlanType    Dimension = "plan_type"
	DimensionControlType Dimension = "control_type"
)

// Dimensions lists the filterable dimensions in display order.
func Dimensions() []Dimension {
	return []Dimension{DimensionSector, DimensionPlanType, DimensionControlType}
}

// IsValid returns true if the dimension is recognised.
func (d Dimension) IsValid() bool {
	switch d {
	case DimensionSector, DimensionPlanType, DimensionControlType:
		return true
	default:
		return false
	}
}

// Label returns a human-readable name for the dimension.
func (d Dimension) Label() string {
	switch d {
	case DimensionSector:
		return "Sector"
	case DimensionPlanType:
		return "Plan Type"
	case DimensionControlType:
		return "Control Type"
	default:
		return "Unknown"
	}
}

// Value returns the row's value for the dimension.
func (d Dimension) Value(r *PlanRow) string {
	switch d {
	case DimensionSector:
		return r.Sector
	case DimensionPlanType:
		return r.PlanType
	case DimensionControlType:
		return r.ControlType
	default:
		return ""
	}
}

// ValueSet is a set of allowed values for one dimension.
// A nil ValueSet allows every value; an empty non-nil set allows none.
type ValueSet map[string]struct{}

// NewValueSet returns a non-nil set holding values.
// Calling it with no arguments yields a set that matches nothing.
func NewValueSet(values ...string) ValueSet {
	s := make(ValueSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// All reports whether the set is unrestricted.
func (s ValueSet) All() bool {
	return s == nil
}

// Contains reports whether v passes the set.
func (s ValueSet) Contains(v string) bool {
	if s == nil {
		return true
	}
	_, ok := s[v]
	return ok
}

// Clone returns a copy of the set; nil stays nil.
func (s ValueSet) Clone() ValueSet {
	if s == nil {
		return nil
	}
	c := make(ValueSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

// Selection holds the current category filters.
// The zero value selects everything.
type Selection struct {
	Sectors      ValueSet
	PlanTypes    ValueSet
	ControlTypes ValueSet
}

// Set returns the value set for a dimension.
func (s *Selection) Set(d Dimension) ValueSet {
	switch d {
	case DimensionSector:
		return s.Sectors
	case DimensionPlanType:
		return s.PlanTypes
	case DimensionControlType:
		return s.ControlTypes
	default:
		return nil
	}
}

// With returns a copy of the selection with the dimension's set replaced.
func (s Selection) With(d Dimension, set ValueSet) Selection {
	switch d {
	case DimensionSector:
		s.Sectors = set
	case DimensionPlanType:
		s.PlanTypes = set
	case DimensionControlType:
		s.ControlTypes = set
	}
	return s
}

// Matches reports whether a row passes all three dimensions.
func (s *Selection) Matches(r *PlanRow) bool {
	return s.Sectors.Contains(r.Sector) &&
		s.PlanTypes.Contains(r.PlanType) &&
		s.ControlTypes.Contains(r.ControlType)
}

// IsEmpty reports whether no dimension is restricted.
func (s *Selection) IsEmpty() bool {
	return s.Sectors.All() && s.PlanTypes.All() && s.ControlTypes.All()
}

// Filter returns the rows that pass sel, in their original order.
// The result is a new slice; rows itself is never modified.
func Filter(rows []PlanRow, sel Selection) []PlanRow {
	out := make([]PlanRow, 0, len(rows))
	for i := range rows {
		if sel.Matches(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
