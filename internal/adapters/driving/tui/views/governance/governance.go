// Package governance provides the governance view: clawback adoption overall
// and across the busiest sectors.
package governance

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

// View is the governance view.
type View struct {
	styles    *styles.Styles
	analytics driving.AnalyticsService
	topN      int

	plans   int
	share   []domain.Count
	sectors []domain.CrossTab

	width  int
	height int
	ready  bool
}

// NewView creates a governance view splitting at most topN sectors.
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

// SetRows recomputes the clawback breakdowns.
func (v *View) SetRows(rows []domain.PlanRow) {
	if v.analytics == nil {
		return
	}
	v.plans = len(rows)
	v.share = v.analytics.ClawbackShare(rows)
	v.sectors = v.analytics.SectorClawback(rows, v.topN)
}

// Update handles messages for the governance view.
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

// View renders the governance view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Governance"),
		"",
		v.styles.Subtitle.Render("Malus / clawback clause"),
		"",
	}

	if v.plans == 0 {
		sections = append(sections, v.styles.Muted.Render("No plans match the current filters."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections = append(sections,
		v.renderShare(),
		"",
		v.styles.Subtitle.Render(fmt.Sprintf("Clawback by sector (top %d)", v.topN)),
		"",
		chart.Stacked(v.styles, v.sectors, v.width-2),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderShare draws the yes/no split, one bar per answer.
func (v *View) renderShare() string {
	lines := make([]string, 0, len(v.share))
	for _, c := range v.share {
		series := 3
		if c.Label == domain.ClawbackYes {
			series = 2
		}
		lines = append(lines, fmt.Sprintf("%-4s %s %d (%s)",
			c.Label,
			v.styles.SeriesStyle(series).Render(strings.Repeat("█", max(1, c.Count*30/v.plans))),
			c.Count,
			chart.Percent(c.Count, v.plans)))
	}
	return strings.Join(lines, "\n")
}

// Share returns the clawback split of the current rows.
func (v *View) Share() []domain.Count {
	return v.share
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
