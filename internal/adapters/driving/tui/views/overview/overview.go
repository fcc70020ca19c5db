// Package overview provides the executive overview view: headline KPIs,
// the busiest sectors and the plan type distribution.
package overview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// sideBySide is the width from which the two charts share a row.
const sideBySide = 110

// View is the executive overview.
type View struct {
	styles    *styles.Styles
	analytics driving.AnalyticsService
	topN      int

	summary   domain.Summary
	sectors   []domain.Count
	planTypes []domain.Count

	width  int
	height int
	ready  bool
}

// NewView creates an overview showing at most topN sectors.
func NewView(s *styles.Styles, analytics driving.AnalyticsService, topN int) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if topN < 1 {
		topN = domain.DefaultTopN
	}

	return &View{
		styles:    s,
		analytics: analytics,
		topN:      topN,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetRows recomputes the aggregates for the filtered table.
func (v *View) SetRows(rows []domain.PlanRow) {
	if v.analytics == nil {
		return
	}
	v.summary = v.analytics.Summarize(rows)
	v.sectors = v.analytics.SectorCounts(rows, v.topN)
	v.planTypes = v.analytics.PlanTypeCounts(rows)
}

// Update handles messages for the overview.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the overview.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Executive Overview"),
		"",
		v.renderCards(),
		"",
	}

	if v.summary.Plans == 0 {
		sections = append(sections, v.styles.Muted.Render("No plans match the current filters."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	chartWidth := v.width - 2
	if v.width >= sideBySide {
		chartWidth = v.width/2 - 2
	}

	sectors := v.styles.Subtitle.Render(fmt.Sprintf("Top %d sectors by plans", v.topN)) + "\n\n" +
		chart.Bars(v.styles, v.sectors, chartWidth, 0)
	planTypes := v.styles.Subtitle.Render("Plan type distribution") + "\n\n" +
		chart.Bars(v.styles, v.planTypes, chartWidth, 1)

	if v.width >= sideBySide {
		left := lipgloss.NewStyle().Width(v.width / 2).Render(sectors)
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, planTypes))
	} else {
		sections = append(sections, sectors, "", planTypes)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderCards() string {
	s := v.summary
	cards := []string{
		v.card("Companies", fmt.Sprint(s.Companies)),
		v.card("Plans", fmt.Sprint(s.Plans)),
		v.card("Mean max dilution", s.MeanDilution.Format("%.2f%%")),
		v.card("Clawback", fmt.Sprintf("%.1f%%", s.ClawbackPct)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v *View) card(label, value string) string {
	style := v.styles.KPIValue
	if value == domain.Unavailable {
		style = v.styles.Warning
	}
	return v.styles.Card.Render(strings.Join([]string{
		v.styles.Muted.Render(label),
		style.Render(value),
	}, "\n"))
}

// Summary returns the KPIs of the current rows.
func (v *View) Summary() domain.Summary {
	return v.summary
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
