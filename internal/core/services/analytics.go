package services

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// Ensure AnalyticsService implements the interface.
var _ driving.AnalyticsService = (*AnalyticsService)(nil)

// AnalyticsService filters and aggregates flattened tables.
// It holds no state besides the collation language, so a single instance
// can serve every caller.
type AnalyticsService struct {
	lang language.Tag
}

// NewAnalyticsService creates a new analytics service that orders names
// using the collation rules of lang. An undetermined tag falls back to
// Brazilian Portuguese, the language of the dataset.
func NewAnalyticsService(lang language.Tag) *AnalyticsService {
	if lang == language.Und {
		lang = language.BrazilianPortuguese
	}
	return &AnalyticsService{lang: lang}
}

// Options returns the distinct values per dimension, collated.
func (s *AnalyticsService) Options(rows []domain.PlanRow) driving.Options {
	return driving.Options{
		Sectors:      s.distinct(rows, domain.DimensionSector.Value),
		PlanTypes:    s.distinct(rows, domain.DimensionPlanType.Value),
		ControlTypes: s.distinct(rows, domain.DimensionControlType.Value),
	}
}

// Filter returns the rows matching the selection, in order.
func (s *AnalyticsService) Filter(rows []domain.PlanRow, sel domain.Selection) []domain.PlanRow {
	return domain.Filter(rows, sel)
}

// Summarize computes the headline KPIs.
func (s *AnalyticsService) Summarize(rows []domain.PlanRow) domain.Summary {
	companies := make(map[string]struct{})
	var (
		dilutionSum   float64
		dilutionCount int
		clawback      int
	)

	for i := range rows {
		r := &rows[i]
		companies[r.Company] = struct{}{}
		if r.MaxDilutionPct != nil {
			dilutionSum += *r.MaxDilutionPct
			dilutionCount++
		}
		if r.Clawback {
			clawback++
		}
	}

	summary := domain.Summary{
		Companies:     len(companies),
		Plans:         len(rows),
		ClawbackCount: clawback,
	}
	if dilutionCount > 0 {
		summary.MeanDilution = domain.Metric{Value: dilutionSum / float64(dilutionCount), Valid: true}
	}
	if len(rows) > 0 {
		summary.ClawbackPct = float64(clawback) / float64(len(rows)) * 100
	}
	return summary
}

// SectorCounts counts rows per sector, largest first, at most topN.
// A topN below 1 returns the full distribution.
func (s *AnalyticsService) SectorCounts(rows []domain.PlanRow, topN int) []domain.Count {
	return truncate(countBy(rows, domain.DimensionSector.Value), topN)
}

// PlanTypeCounts counts rows per plan type, largest first.
func (s *AnalyticsService) PlanTypeCounts(rows []domain.PlanRow) []domain.Count {
	return countBy(rows, domain.DimensionPlanType.Value)
}

// ClawbackShare counts rows with and without clawback.
func (s *AnalyticsService) ClawbackShare(rows []domain.PlanRow) []domain.Count {
	return countBy(rows, func(r *domain.PlanRow) string { return r.ClawbackLabel() })
}

// SectorClawback splits the topN sectors by clawback presence, in the same
// order as SectorCounts.
func (s *AnalyticsService) SectorClawback(rows []domain.PlanRow, topN int) []domain.CrossTab {
	top := s.SectorCounts(rows, topN)
	index := make(map[string]int, len(top))
	out := make([]domain.CrossTab, len(top))
	for i, c := range top {
		index[c.Label] = i
		out[i].Sector = c.Label
	}

	for i := range rows {
		pos, ok := index[rows[i].Sector]
		if !ok {
			continue
		}
		if rows[i].Clawback {
			out[pos].WithClawback++
		} else {
			out[pos].WithoutClawback++
		}
	}
	return out
}

// VestingDilution returns rows with both vesting and dilution known.
func (s *AnalyticsService) VestingDilution(rows []domain.PlanRow) []domain.Point {
	out := make([]domain.Point, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		if r.VestingYears == nil || r.MaxDilutionPct == nil {
			continue
		}
		out = append(out, domain.Point{
			Company:        r.Company,
			PlanType:       r.PlanType,
			Sector:         r.Sector,
			ControlType:    r.ControlType,
			VestingYears:   *r.VestingYears,
			MaxDilutionPct: *r.MaxDilutionPct,
		})
	}
	return out
}

// VestingByControl describes known vesting values per control type.
// Groups appear in first-seen order; groups with no known value are omitted.
func (s *AnalyticsService) VestingByControl(rows []domain.PlanRow) []domain.Distribution {
	var order []string
	values := make(map[string][]float64)
	for i := range rows {
		r := &rows[i]
		if _, seen := values[r.ControlType]; !seen {
			order = append(order, r.ControlType)
			values[r.ControlType] = nil
		}
		if r.VestingYears != nil {
			values[r.ControlType] = append(values[r.ControlType], *r.VestingYears)
		}
	}

	out := make([]domain.Distribution, 0, len(order))
	for _, group := range order {
		if len(values[group]) == 0 {
			continue
		}
		out = append(out, describe(group, values[group]))
	}
	return out
}

// Companies returns the distinct company names, collated.
func (s *AnalyticsService) Companies(rows []domain.PlanRow) []string {
	return s.distinct(rows, func(r *domain.PlanRow) string { return r.Company })
}

// FindCompanies returns company names containing query, ignoring case and
// accents. An empty query returns every company.
func (s *AnalyticsService) FindCompanies(rows []domain.PlanRow, query string) []string {
	names := s.Companies(rows)
	needle := fold(strings.TrimSpace(query))
	if needle == "" {
		return names
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(fold(name), needle) {
			out = append(out, name)
		}
	}
	return out
}

// Dossier returns one company's plans in table order.
func (s *AnalyticsService) Dossier(rows []domain.PlanRow, company string) (*domain.Dossier, error) {
	var d *domain.Dossier
	for i := range rows {
		r := rows[i]
		if r.Company != company {
			continue
		}
		if d == nil {
			d = &domain.Dossier{
				Company:     r.Company,
				Sector:      r.Sector,
				ControlType: r.ControlType,
			}
		}
		d.Plans = append(d.Plans, r)
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// distinct returns the distinct values of key across rows, collated.
func (s *AnalyticsService) distinct(rows []domain.PlanRow, key func(*domain.PlanRow) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range rows {
		v := key(&rows[i])
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	// Collators keep scratch buffers, so each call gets its own.
	collate.New(s.lang).SortStrings(out)
	return out
}

// countBy counts rows per key, largest first. Ties keep first-seen order.
func countBy(rows []domain.PlanRow, key func(*domain.PlanRow) string) []domain.Count {
	index := make(map[string]int)
	out := make([]domain.Count, 0)
	for i := range rows {
		k := key(&rows[i])
		pos, ok := index[k]
		if !ok {
			pos = len(out)
			index[k] = pos
			out = append(out, domain.Count{Label: k})
		}
		out[pos].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// truncate keeps the first n counts. n below 1 keeps everything.
func truncate(counts []domain.Count, n int) []domain.Count {
	if n < 1 || len(counts) <= n {
		return counts
	}
	return counts[:n]
}

// describe computes box-plot statistics using linear interpolation between
// closest ranks. values must be non-empty; it is sorted in place.
func describe(group string, values []float64) domain.Distribution {
	sort.Float64s(values)
	return domain.Distribution{
		Group:  group,
		N:      len(values),
		Min:    values[0],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
		Max:    values[len(values)-1],
	}
}

// quantile returns the p-quantile of sorted values.
func quantile(sorted []float64, p float64) float64 {
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// fold lowercases s and strips combining marks, so "São" matches "sao".
func fold(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
