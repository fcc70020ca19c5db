// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewOverview shows headline KPIs and distributions.
	ViewOverview
	// ViewBenchmark compares vesting and dilution.
	ViewBenchmark
	// ViewGovernance shows clawback adoption.
	ViewGovernance
	// ViewExplorer searches companies and shows a dossier.
	ViewExplorer
	// ViewFilters edits the category filters.
	ViewFilters
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewOverview:
		return "overview"
	case ViewBenchmark:
		return "benchmark"
	case ViewGovernance:
		return "governance"
	case ViewExplorer:
		return "explorer"
	case ViewFilters:
		return "filters"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DataLoaded carries the base table read from the dataset.
type DataLoaded struct {
	Rows []domain.PlanRow
	Err  error
}

// SelectionChanged carries a new set of category filters.
type SelectionChanged struct {
	Selection domain.Selection
}

// WatchStarted carries the change channel of the dataset watcher.
type WatchStarted struct {
	Events <-chan string
	Err    error
}

// SourceChanged signals the dataset file changed on disk.
type SourceChanged struct {
	Path string
}

// ReloadRequested asks the app to drop the cache and read the dataset again.
type ReloadRequested struct{}

// CompanySelected asks the explorer to open a company's dossier.
type CompanySelected struct {
	Company string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
