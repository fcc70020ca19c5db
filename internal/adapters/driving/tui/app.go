package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/benchmark"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/explorer"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/filters"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/governance"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/overview"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keys   *keymap.KeyMap
	status *status.Bar

	menuView       *menu.View
	overviewView   *overview.View
	benchmarkView  *benchmark.View
	governanceView *governance.View
	explorerView   *explorer.View
	filtersView    *filters.View
	settingsView   *settings.View

	// base is the full table as loaded. It is never modified in place.
	base []domain.PlanRow

	// selection is the applied filter selection.
	selection domain.Selection

	// filtered is base narrowed by selection.
	filtered []domain.PlanRow

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where the filters view returns to after applying.
	previousView messages.ViewType

	// events delivers dataset file changes while watching.
	events <-chan string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	menuView := menu.NewView(s)
	menuView.SetSource(ports.Dataset.Path())

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keys:           km,
		status:         status.NewBar(s, km),
		menuView:       menuView,
		overviewView:   overview.NewView(s, ports.Analytics, ports.TopN),
		benchmarkView:  benchmark.NewView(s, ports.Analytics),
		governanceView: governance.NewView(s, ports.Analytics, ports.TopN),
		explorerView:   explorer.NewView(s, ports.Analytics),
		filtersView:    filters.NewView(s, km),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
		previousView:   messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It loads the table and starts watching the dataset file.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("incentiva - Equity Incentive Plans"),
		a.loadRows(),
		a.startWatch(),
	)
}

func (a *App) loadRows() tea.Cmd {
	ctx := a.ctx
	dataset := a.ports.Dataset
	return func() tea.Msg {
		rows, err := dataset.Load(ctx)
		return messages.DataLoaded{Rows: rows, Err: err}
	}
}

func (a *App) startWatch() tea.Cmd {
	ctx := a.ctx
	dataset := a.ports.Dataset
	return func() tea.Msg {
		events, err := dataset.Watch(ctx)
		return messages.WatchStarted{Events: events, Err: err}
	}
}

// waitForChange blocks on the next dataset change. A closed channel ends the loop.
func waitForChange(events <-chan string) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-events
		if !ok {
			return nil
		}
		return messages.SourceChanged{Path: path}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case messages.DataLoaded:
		if msg.Err != nil {
			a.setError(msg.Err)
			logger.Error("loading dataset %s: %v", a.ports.Dataset.Path(), msg.Err)
			return a, nil
		}
		a.err = nil
		a.base = msg.Rows
		a.filtersView.SetOptions(a.ports.Analytics.Options(a.base), a.selection)
		a.refilter()
		logger.Debug("Dataset loaded: %d rows", len(a.base))
		return a, nil

	case messages.WatchStarted:
		if msg.Err != nil {
			// Watching is a convenience; the dashboard still works without it.
			logger.Warn("Not watching dataset: %v", msg.Err)
			a.status.SetMessage("not watching: " + msg.Err.Error())
			return a, nil
		}
		a.events = msg.Events
		return a, waitForChange(a.events)

	case messages.SourceChanged:
		logger.Info("Dataset %s changed, reloading", msg.Path)
		a.ports.Dataset.Invalidate()
		a.status.SetState(status.StateLoading)
		a.status.SetMessage("reloaded after change")
		return a, tea.Batch(a.loadRows(), waitForChange(a.events))

	case messages.ReloadRequested:
		a.ports.Dataset.Invalidate()
		a.status.SetState(status.StateLoading)
		a.status.SetMessage("")
		return a, a.loadRows()

	case messages.SelectionChanged:
		a.selection = msg.Selection
		a.refilter()
		a.currentView = a.previousView
		return a, nil

	case messages.CompanySelected:
		a.explorerView, cmd = a.explorerView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded, messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	k := msg.String()

	// Global quit with ctrl+c
	if k == "ctrl+c" {
		return a, tea.Quit
	}

	// Plain letters belong to text inputs while one is focused.
	typing := (a.currentView == messages.ViewExplorer && a.explorerView.Typing()) ||
		(a.currentView == messages.ViewSettings && a.settingsView.Editing())

	if !typing && a.currentView != messages.ViewFilters {
		switch {
		case keymap.Matches(k, a.keys.Filters):
			return a, a.switchTo(messages.ViewFilters)
		case keymap.Matches(k, a.keys.Reload):
			return a, func() tea.Msg { return messages.ReloadRequested{} }
		case keymap.Matches(k, a.keys.Help):
			return a, a.switchTo(messages.ViewHelp)
		}
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewOverview:
		a.overviewView, cmd = a.overviewView.Update(msg)
	case messages.ViewBenchmark:
		a.benchmarkView, cmd = a.benchmarkView.Update(msg)
	case messages.ViewGovernance:
		a.governanceView, cmd = a.governanceView.Update(msg)
	case messages.ViewExplorer:
		a.explorerView, cmd = a.explorerView.Update(msg)
	case messages.ViewFilters:
		a.filtersView, cmd = a.filtersView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		if msg.Type == tea.KeyEsc || k == "q" {
			a.currentView = messages.ViewMenu
		}
	}
	return a, cmd
}

func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	if view == messages.ViewFilters && a.currentView != messages.ViewFilters {
		a.previousView = a.currentView
		if a.previousView == messages.ViewHelp {
			a.previousView = messages.ViewMenu
		}
	}
	a.currentView = view

	switch view {
	case messages.ViewExplorer:
		a.explorerView.Reset()
		return a.explorerView.Init()
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewFilters:
		return a.filtersView.Init()
	case messages.ViewOverview:
		return a.overviewView.Init()
	case messages.ViewBenchmark:
		return a.benchmarkView.Init()
	case messages.ViewGovernance:
		return a.governanceView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// refilter recomputes the filtered table and pushes it to every view.
func (a *App) refilter() {
	a.filtered = a.ports.Analytics.Filter(a.base, a.selection)
	a.overviewView.SetRows(a.filtered)
	a.benchmarkView.SetRows(a.filtered)
	a.governanceView.SetRows(a.filtered)
	a.explorerView.SetRows(a.filtered)

	summary := a.ports.Analytics.Summarize(a.filtered)
	a.status.SetState(status.StateReady)
	a.status.SetCounts(len(a.filtered), len(a.base), summary.Companies, !a.selection.IsEmpty())
}

func (a *App) setError(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	a.status.SetMessage(err.Error())
}

// View implements tea.Model.
// It renders the active view followed by the status bar.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewMenu:
		body = a.menuView.View()
	case messages.ViewOverview:
		body = a.overviewView.View()
	case messages.ViewBenchmark:
		body = a.benchmarkView.View()
	case messages.ViewGovernance:
		body = a.governanceView.View()
	case messages.ViewExplorer:
		body = a.explorerView.View()
	case messages.ViewFilters:
		body = a.filtersView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n" + a.status.View()
}

// viewHelp renders the help screen.
func (a *App) viewHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-14s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render("Filters apply to every chart and to the company explorer."))
	b.WriteString("\n")
	if path := a.ports.Dataset.Path(); path != "" {
		b.WriteString(a.styles.Muted.Render("Dataset: " + path))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("[esc] back"))

	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Selection returns the applied filter selection.
func (a *App) Selection() domain.Selection {
	return a.selection
}

// Rows returns the filtered table.
func (a *App) Rows() []domain.PlanRow {
	return a.filtered
}

// BaseRows returns the full table.
func (a *App) BaseRows() []domain.PlanRow {
	return a.base
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions and sizes every view.
// One line is reserved for the status bar.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	h := max(height-1, 1)
	a.menuView.SetDimensions(width, h)
	a.overviewView.SetDimensions(width, h)
	a.benchmarkView.SetDimensions(width, h)
	a.governanceView.SetDimensions(width, h)
	a.explorerView.SetDimensions(width, h)
	a.filtersView.SetDimensions(width, h)
	a.settingsView.SetDimensions(width, h)
	a.status.SetWidth(width)
}
