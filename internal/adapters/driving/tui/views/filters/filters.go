// Package filters provides the filter editor: one multi-select list per
// category dimension, applied together.
package filters

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// View is the filter editor. Edits are kept as a draft until applied.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	dimensions []domain.Dimension
	lists      map[domain.Dimension]*list.List
	active     int

	options driving.Options
	applied domain.Selection
	draft   domain.Selection

	width  int
	height int
	ready  bool
}

// NewView creates a filter editor.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	dims := domain.Dimensions()
	lists := make(map[domain.Dimension]*list.List, len(dims))
	for _, d := range dims {
		lists[d] = list.New(s, d.Label()).WithCheckboxes()
	}

	return &View{
		styles:     s,
		keymap:     km,
		dimensions: dims,
		lists:      lists,
		width:      80,
		height:     24,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetOptions sets the values to choose from and the selection in force.
// Any unapplied edits are discarded.
func (v *View) SetOptions(options driving.Options, applied domain.Selection) {
	v.options = options
	v.applied = applied
	v.draft = applied
	for _, d := range v.dimensions {
		v.rebuild(d)
	}
}

// rebuild refreshes the checkboxes of one dimension from the draft.
func (v *View) rebuild(d domain.Dimension) {
	set := v.draft.Set(d)
	values := v.options.Values(d)
	items := make([]list.Item, len(values))
	for i, value := range values {
		items[i] = list.Item{Label: value, Marked: set.Contains(value)}
	}
	v.lists[d].SetItems(items)
}

// Update handles messages for the filter editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	d := v.current()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		v.draft = v.applied
		for _, dim := range v.dimensions {
			v.rebuild(dim)
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(k, v.keymap.Select):
		v.applied = v.draft
		sel := v.draft
		return v, func() tea.Msg {
			return messages.SelectionChanged{Selection: sel}
		}

	case keymap.Matches(k, v.keymap.Toggle):
		if item := v.lists[d].SelectedItem(); item != nil {
			v.toggle(d, item.Label)
		}

	case keymap.Matches(k, v.keymap.All):
		v.draft = v.draft.With(d, nil)
		v.rebuild(d)

	case keymap.Matches(k, v.keymap.None):
		v.draft = v.draft.With(d, domain.NewValueSet())
		v.rebuild(d)

	case keymap.Matches(k, v.keymap.NextTab):
		v.active = (v.active + 1) % len(v.dimensions)

	case keymap.Matches(k, v.keymap.PrevTab):
		v.active = (v.active + len(v.dimensions) - 1) % len(v.dimensions)

	default:
		v.lists[d], _ = v.lists[d].Update(msg)
	}
	return v, nil
}

// toggle flips one value of dimension d in the draft. A set holding every
// observed value collapses back to "all" so new values stay visible.
func (v *View) toggle(d domain.Dimension, value string) {
	values := v.options.Values(d)
	set := v.draft.Set(d)

	if set.All() {
		set = domain.NewValueSet(values...)
	} else {
		set = set.Clone()
	}

	if _, ok := set[value]; ok {
		delete(set, value)
	} else {
		set[value] = struct{}{}
	}

	if coversAll(set, values) {
		set = nil
	}
	v.draft = v.draft.With(d, set)
	v.rebuild(d)
}

func coversAll(set domain.ValueSet, values []string) bool {
	for _, value := range values {
		if !set.Contains(value) {
			return false
		}
	}
	return true
}

func (v *View) current() domain.Dimension {
	return v.dimensions[v.active]
}

// View renders the filter editor.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Filters"),
		"",
		v.renderTabs(),
		"",
		v.lists[v.current()].View(),
		"",
	}
	if v.Pending() {
		sections = append(sections, v.styles.Warning.Render("Unapplied changes: [enter] apply  [esc] discard"), "")
	}
	sections = append(sections, v.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTabs() string {
	tabs := make([]string, 0, len(v.dimensions))
	for i, d := range v.dimensions {
		label := fmt.Sprintf(" %s: %s ", d.Label(), v.describe(d))
		if i == v.active {
			tabs = append(tabs, v.styles.Selected.Render(label))
		} else {
			tabs = append(tabs, v.styles.Muted.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

// describe summarises the draft of one dimension.
func (v *View) describe(d domain.Dimension) string {
	set := v.draft.Set(d)
	total := len(v.options.Values(d))
	switch {
	case set.All():
		return "all"
	case len(set) == 0:
		return "none"
	default:
		selected := 0
		for _, value := range v.options.Values(d) {
			if set.Contains(value) {
				selected++
			}
		}
		return fmt.Sprintf("%d/%d", selected, total)
	}
}

func (v *View) renderHelp() string {
	bindings := v.keymap.FilterHelp()
	hints := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
	}
	hints = append(hints, "[esc] discard")
	return v.styles.Help.Render(strings.Join(hints, "  "))
}

// Draft returns the selection being edited.
func (v *View) Draft() domain.Selection {
	return v.draft
}

// Active returns the dimension being edited.
func (v *View) Active() domain.Dimension {
	return v.current()
}

// Pending reports whether the draft differs from the applied selection.
func (v *View) Pending() bool {
	for _, d := range v.dimensions {
		if !sameSet(v.draft.Set(d), v.applied.Set(d)) {
			return true
		}
	}
	return false
}

func sameSet(a, b domain.ValueSet) bool {
	if a.All() || b.All() {
		return a.All() == b.All()
	}
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b.Contains(k) {
			return false
		}
	}
	return true
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, l := range v.lists {
		l.SetDimensions(width, max(4, height-8))
	}
}
