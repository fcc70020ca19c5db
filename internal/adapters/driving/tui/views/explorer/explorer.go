// Package explorer provides the company explorer: a search box over the
// filtered companies and a dossier of the chosen company's plans.
package explorer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// Mode is what the explorer is showing.
type Mode int

const (
	// ModeSearch has the search box focused.
	ModeSearch Mode = iota
	// ModeList navigates the matching companies.
	ModeList
	// ModeDossier shows one company.
	ModeDossier
)

// View is the company explorer.
type View struct {
	styles    *styles.Styles
	analytics driving.AnalyticsService
	input     *input.Field
	list      *list.List

	rows    []domain.PlanRow
	dossier *domain.Dossier
	mode    Mode
	offset  int
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a company explorer.
func NewView(s *styles.Styles, analytics driving.AnalyticsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:    s,
		analytics: analytics,
		input:     input.NewField(s, "Company", "type to search, accents optional"),
		list:      list.New(s, "Companies"),
		width:     80,
		height:    24,
	}
}

// Init focuses the search box.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Reset returns to the search box with an empty query.
func (v *View) Reset() {
	v.input.Reset()
	v.input.Focus()
	v.mode = ModeSearch
	v.dossier = nil
	v.err = nil
	v.offset = 0
	v.refresh()
	v.list.SetSelected(0)
}

// SetRows replaces the searchable table. An open dossier is rebuilt from
// the new rows, or closed if the company no longer matches the filters.
func (v *View) SetRows(rows []domain.PlanRow) {
	v.rows = rows
	v.refresh()
	if v.dossier != nil {
		v.open(v.dossier.Company)
	}
}

// refresh recomputes the matching companies for the current query.
func (v *View) refresh() {
	if v.analytics == nil {
		return
	}
	names := v.analytics.FindCompanies(v.rows, v.input.Value())
	items := make([]list.Item, len(names))
	for i, name := range names {
		items[i] = list.Item{Label: name}
	}
	v.list.SetItems(items)
}

// open shows the dossier of company, or reports why it cannot.
func (v *View) open(company string) {
	if v.analytics == nil {
		return
	}
	d, err := v.analytics.Dossier(v.rows, company)
	if err != nil {
		v.dossier = nil
		v.err = fmt.Errorf("%s: %w", company, err)
		v.mode = ModeList
		return
	}
	v.dossier = d
	v.err = nil
	v.offset = 0
	v.mode = ModeDossier
	v.input.Blur()
}

// Update handles messages for the explorer.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CompanySelected:
		v.open(msg.Company)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	if v.mode == ModeSearch {
		v.input, cmd = v.input.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case ModeDossier:
		return v.handleDossierKey(msg)
	case ModeList:
		return v.handleListKey(msg)
	case ModeSearch:
	}

	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		return v, backToMenu
	case tea.KeyEnter:
		return v, v.selectCurrent()
	case tea.KeyDown, tea.KeyTab:
		if !v.list.IsEmpty() {
			v.mode = ModeList
			v.input.Blur()
		}
		return v, nil
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		v.refresh()
		v.list.SetSelected(0)
	}
	return v, cmd
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, backToMenu
	case "enter":
		return v, v.selectCurrent()
	case "/", "tab":
		v.mode = ModeSearch
		return v, v.input.Focus()
	case "up", "k":
		if v.list.Selected() == 0 {
			v.mode = ModeSearch
			return v, v.input.Focus()
		}
	}
	v.list, _ = v.list.Update(msg)
	return v, nil
}

func (v *View) handleDossierKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		v.mode = ModeList
		v.dossier = nil
		return v, nil
	case "down", "j":
		v.offset++
	case "up", "k":
		if v.offset > 0 {
			v.offset--
		}
	case "home", "g":
		v.offset = 0
	}
	return v, nil
}

func (v *View) selectCurrent() tea.Cmd {
	item := v.list.SelectedItem()
	if item == nil {
		return nil
	}
	company := item.Label
	return func() tea.Msg {
		return messages.CompanySelected{Company: company}
	}
}

func backToMenu() tea.Msg {
	return messages.ViewChanged{View: messages.ViewMenu}
}

// View renders the explorer.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	if v.mode == ModeDossier && v.dossier != nil {
		return v.renderDossier()
	}

	sections := []string{
		v.styles.Title.Render("Company Explorer"),
		"",
		v.input.View(),
		"",
	}
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	sections = append(sections,
		v.list.View(),
		"",
		v.styles.Help.Render("[type] search  [↓/tab] results  [enter] open  [esc] menu"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderDossier() string {
	d := v.dossier
	lines := []string{
		v.styles.Title.Render(d.Company),
		"",
		fmt.Sprintf("%s %s   %s %s   %s %d   %s %d",
			v.styles.Muted.Render("Sector:"), d.Sector,
			v.styles.Muted.Render("Control:"), d.ControlType,
			v.styles.Muted.Render("Plans:"), len(d.Plans),
			v.styles.Muted.Render("Documents:"), d.DocumentCount()),
		"",
	}
	lines = append(lines, strings.Split(v.plansTable(), "\n")...)
	lines = append(lines, "", v.styles.Subtitle.Render("Source documents"))

	for i := range d.Plans {
		p := &d.Plans[i]
		lines = append(lines, "", v.styles.Normal.Bold(true).Render(p.PlanType))
		if len(p.Documents) == 0 {
			lines = append(lines, v.styles.Muted.Render("  no documents"))
			continue
		}
		for _, doc := range p.Documents {
			lines = append(lines, "  "+hyperlink(doc))
		}
	}

	// Keep the footer on screen by scrolling the body.
	body := max(1, v.height-2)
	if len(lines) > body {
		v.offset = min(v.offset, len(lines)-body)
		lines = lines[v.offset : v.offset+body]
	} else {
		v.offset = 0
	}
	lines = append(lines, "", v.styles.Help.Render("[j/k] scroll  [esc] back"))
	return strings.Join(lines, "\n")
}

func (v *View) plansTable() string {
	rows := make([][]string, 0, len(v.dossier.Plans))
	for i := range v.dossier.Plans {
		p := &v.dossier.Plans[i]
		rows = append(rows, []string{
			p.PlanType,
			optional(p.VestingYears, "%.1f"),
			optional(p.MaxDilutionPct, "%.2f"),
			p.ClawbackLabel(),
			fmt.Sprint(p.DocumentCount),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(v.styles.Theme().Border)).
		Headers("Plan type", "Vesting (yrs)", "Max dilution (%)", "Clawback", "Docs").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		}).
		String()
}

func optional(v *float64, format string) string {
	if v == nil {
		return domain.Unavailable
	}
	return fmt.Sprintf(format, *v)
}

// hyperlink wraps web addresses in an OSC 8 escape so terminals that
// support it make them clickable. Other strings are returned unchanged.
func hyperlink(target string) string {
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return target
	}
	return "\x1b]8;;" + target + "\x1b\\" + target + "\x1b]8;;\x1b\\"
}

// Mode returns what the explorer is showing.
func (v *View) Mode() Mode {
	return v.mode
}

// Typing reports whether keys go to the search box.
func (v *View) Typing() bool {
	return v.mode == ModeSearch
}

// Dossier returns the open dossier, or nil.
func (v *View) Dossier() *domain.Dossier {
	return v.dossier
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Matches returns the number of companies matching the query.
func (v *View) Matches() int {
	return v.list.Count()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.list.SetDimensions(width, max(4, height-8))
}
