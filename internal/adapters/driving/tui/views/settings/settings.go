// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
)

// ErrNoSettingsService is reported when the view has no service to use.
var ErrNoSettingsService = errors.New("settings service not available")

// Field identifies one editable setting.
type Field int

const (
	FieldPath Field = iota
	FieldWatch
	FieldDuplicates
	FieldTopN
	fieldCount
)

// Key constants for key handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
)

var policies = []domain.DuplicatePolicy{
	domain.DuplicateMerge,
	domain.DuplicateKeepLast,
	domain.DuplicateReject,
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	saved    bool

	selected  int
	editing   bool
	pathInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/dataset.json"
	pathInput.CharLimit = 1024
	pathInput.Width = 60

	return &View{
		styles:          s,
		settingsService: settingsService,
		pathInput:       pathInput,
	}
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.selected = 0
	v.editing = false
	v.saved = false
	v.err = nil
	v.pathInput.Blur()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

func (v *View) save(settings domain.AppSettings) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Err: ErrNoSettingsService}
		}
		return messages.SettingsSaved{Err: v.settingsService.Save(&settings)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.saved = true
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil
	case "down", "j":
		if v.selected < int(fieldCount)-1 {
			v.selected++
		}
		return v, nil
	}

	if v.settings == nil {
		return v, nil
	}
	draft := *v.settings

	switch Field(v.selected) {
	case FieldPath:
		if msg.String() == keyEnter {
			v.editing = true
			v.pathInput.SetValue(draft.Data.Path)
			v.pathInput.CursorEnd()
			return v, v.pathInput.Focus()
		}
	case FieldWatch:
		if msg.String() == keyEnter || msg.String() == " " {
			draft.Data.Watch = !draft.Data.Watch
			return v, v.save(draft)
		}
	case FieldDuplicates:
		if msg.String() == keyEnter || msg.String() == " " || msg.String() == "right" {
			draft.Data.Duplicates = nextPolicy(draft.Data.Duplicates)
			return v, v.save(draft)
		}
	case FieldTopN:
		switch msg.String() {
		case "+", "right", "l":
			draft.Charts.TopN++
			return v, v.save(draft)
		case "-", "left", "h":
			if draft.Charts.TopN > 1 {
				draft.Charts.TopN--
				return v, v.save(draft)
			}
		}
	case fieldCount:
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.editing = false
		v.pathInput.Blur()
		return v, nil
	case keyEnter:
		v.editing = false
		v.pathInput.Blur()
		draft := *v.settings
		draft.Data.Path = strings.TrimSpace(v.pathInput.Value())
		return v, v.save(draft)
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

func nextPolicy(p domain.DuplicatePolicy) domain.DuplicatePolicy {
	for i, candidate := range policies {
		if candidate == p {
			return policies[(i+1)%len(policies)]
		}
	}
	return policies[0]
}

// View renders the settings view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.settings == nil {
		if v.err != nil {
			b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		} else {
			b.WriteString(v.styles.Muted.Render("Loading settings..."))
		}
		return b.String()
	}

	path := v.settings.Data.Path
	if path == "" {
		path = "(not set)"
	}
	if v.editing {
		path = v.pathInput.View()
	}

	rows := []struct{ label, value, hint string }{
		{"Dataset file", path, "[enter] edit"},
		{"Reload on change", yesNo(v.settings.Data.Watch), "[enter] toggle"},
		{"Duplicate names", fmt.Sprintf("%s (%s)", v.settings.Data.Duplicates, v.settings.Data.Duplicates.Description()), "[enter] next"},
		{"Sectors in charts", fmt.Sprint(v.settings.Charts.TopN), "[+/-] adjust"},
	}

	for i, r := range rows {
		cursor := "  "
		label := v.styles.Normal.Render(fmt.Sprintf("%-18s", r.label))
		if i == v.selected {
			cursor = "> "
			label = v.styles.Selected.Render(fmt.Sprintf("%-18s", r.label))
		}
		b.WriteString(cursor + label + " " + r.value + "  " + v.styles.Muted.Render(r.hint) + "\n")
	}

	b.WriteString("\n")
	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.saved:
		b.WriteString(v.styles.Success.Render("Saved. Dataset and chart changes apply the next time the dashboard starts."))
	}
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [esc] back"))

	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Editing reports whether the path input is focused.
func (v *View) Editing() bool {
	return v.editing
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}
