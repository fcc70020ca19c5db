// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
)

// Item is one entry of a list.
type Item struct {
	Label  string
	Detail string

	// Marked is drawn as a checkbox when the list shows checkboxes.
	Marked bool
}

// List displays items in a navigable, scrolling list.
type List struct {
	title      string
	items      []Item
	selected   int
	checkboxes bool
	styles     *styles.Styles
	width      int
	height     int
}

// New creates a list with the given title.
func New(s *styles.Styles, title string) *List {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &List{
		title:  title,
		styles: s,
		width:  80,
		height: 10,
	}
}

// WithCheckboxes makes the list draw a checkbox before each item.
func (l *List) WithCheckboxes() *List {
	l.checkboxes = true
	return l
}

// Update handles list navigation messages.
func (l *List) Update(msg tea.Msg) (*List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			l.selected = max(0, len(l.items)-1)
		}
	}
	return l, nil
}

// View renders the list.
func (l *List) View() string {
	lines := make([]string, 0, len(l.items)+2)
	if l.title != "" {
		lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("%s (%d)", l.title, len(l.items))), "")
	}

	if len(l.items) == 0 {
		lines = append(lines, l.styles.Muted.Render("No items"))
		return strings.Join(lines, "\n")
	}

	start, end := l.window()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i))
	}
	if end < len(l.items) {
		lines = append(lines, l.styles.Muted.Render(fmt.Sprintf("  ... %d more", len(l.items)-end)))
	}

	return strings.Join(lines, "\n")
}

// window returns the visible index range, keeping the selection in view.
func (l *List) window() (int, int) {
	visible := l.height - 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.items))
	return start, end
}

func (l *List) renderItem(index int) string {
	item := l.items[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}
	if l.checkboxes {
		if item.Marked {
			indicator += "[x] "
		} else {
			indicator += "[ ] "
		}
	}

	labelWidth := l.width - runewidth.StringWidth(indicator) - runewidth.StringWidth(item.Detail) - 4
	if labelWidth < 10 {
		labelWidth = 10
	}
	label := runewidth.Truncate(item.Label, labelWidth, "…")

	if index == l.selected {
		return l.styles.Selected.Render(indicator+label) + " " + l.styles.Muted.Render(item.Detail)
	}
	return l.styles.Normal.Render(indicator+label) + " " + l.styles.Muted.Render(item.Detail)
}

// SetItems replaces the items, keeping the selection in range.
func (l *List) SetItems(items []Item) {
	l.items = items
	if l.selected >= len(items) {
		l.selected = max(0, len(items)-1)
	}
}

// Items returns the current items.
func (l *List) Items() []Item {
	return l.items
}

// Selected returns the index of the selected item.
func (l *List) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *List) SetSelected(index int) {
	if index >= 0 && index < len(l.items) {
		l.selected = index
	}
}

// SelectedItem returns the currently selected item, or nil if none.
func (l *List) SelectedItem() *Item {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *List) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *List) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of items.
func (l *List) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *List) IsEmpty() bool {
	return len(l.items) == 0
}
