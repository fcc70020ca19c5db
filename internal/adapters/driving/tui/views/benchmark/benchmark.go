// Package benchmark provides the benchmark view: vesting against dilution
// per plan, and vesting statistics per control type.
package benchmark

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// View is the benchmark view.
type View struct {
	styles    *styles.Styles
	analytics driving.AnalyticsService

	plans         int
	points        []domain.Point
	distributions []domain.Distribution

	width  int
	height int
	ready  bool
}

// NewView creates a benchmark view.
func NewView(s *styles.Styles, analytics driving.AnalyticsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		analytics: analytics,
		width:     80,
		height:    24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetRows recomputes the scatter points and box statistics.
func (v *View) SetRows(rows []domain.PlanRow) {
	if v.analytics == nil {
		return
	}
	v.plans = len(rows)
	v.points = v.analytics.VestingDilution(rows)
	v.distributions = v.analytics.VestingByControl(rows)
}

// Update handles messages for the benchmark view.
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

// View renders the benchmark view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	plotHeight := max(8, v.height/2)
	sections := []string{
		v.styles.Title.Render("Benchmark"),
		"",
		v.styles.Subtitle.Render("Vesting period vs. max dilution"),
		v.styles.Muted.Render(fmt.Sprintf("%d of %d plans with both values known", len(v.points), v.plans)),
		"",
		chart.Scatter(v.styles, v.points, v.width-2, plotHeight),
		"",
		v.styles.Subtitle.Render("Vesting period by control type (years)"),
		"",
		v.renderDistributions(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderDistributions() string {
	if len(v.distributions) == 0 {
		return v.styles.Muted.Render("No plans with a known vesting period")
	}

	rows := make([][]string, 0, len(v.distributions))
	for _, d := range v.distributions {
		rows = append(rows, []string{
			d.Group,
			fmt.Sprint(d.N),
			years(d.Min),
			years(d.Q1),
			years(d.Median),
			years(d.Q3),
			years(d.Max),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.styles.Theme().Border)).
		Headers("Control type", "n", "min", "q1", "median", "q3", "max").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		})
	return t.String()
}

func years(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Points returns the plotted points.
func (v *View) Points() []domain.Point {
	return v.points
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
