// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label       string
	Description string
	View        messages.ViewType
	Quit        bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	source   string
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Executive Overview", Description: "KPIs, top sectors, plan types", View: messages.ViewOverview},
			{Label: "Benchmark", Description: "vesting vs. dilution, vesting by control", View: messages.ViewBenchmark},
			{Label: "Governance", Description: "clawback adoption", View: messages.ViewGovernance},
			{Label: "Company Explorer", Description: "search a company, read its plans", View: messages.ViewExplorer},
			{Label: "Filters", Description: "sector, plan type, control type", View: messages.ViewFilters},
			{Label: "Settings", Description: "dataset and chart options", View: messages.ViewSettings},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		selected: 0,
		width:    80,
		height:   24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetSource sets the dataset path shown under the title.
func (v *View) SetSource(path string) {
	v.source = path
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			return v, v.choose(v.selected)

		case "q":
			return v, tea.Quit

		default:
			// Digits jump straight to an item.
			if len(k) == 1 && k[0] >= '1' && int(k[0]-'1') < len(v.items) {
				v.selected = int(k[0] - '1')
				return v, v.choose(v.selected)
			}
		}
	}

	return v, nil
}

func (v *View) choose(i int) tea.Cmd {
	item := v.items[i]
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Incentiva"))
	b.WriteString("\n\n")

	subtitle := "Equity Incentive Plans Dashboard"
	if v.source != "" {
		subtitle += " | " + v.source
	}
	b.WriteString(v.styles.Muted.Render(subtitle))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

		if i == v.selected {
			cursor = "> "
			style = lipgloss.NewStyle().
				Foreground(lipgloss.Color("86")).
				Bold(true)
		}

		line := cursor + style.Render(fmt.Sprintf("%d. %-20s", i+1, item.Label))
		if item.Description != "" {
			line += v.styles.Muted.Render(item.Description)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [1-8] Jump  [Enter] Select  [f] Filters  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
