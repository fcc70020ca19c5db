package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/services"
)

func ptr(f float64) *float64 { return &f }

func testRows() []domain.PlanRow {
	return []domain.PlanRow{
		{Company: "Alfa S.A.", Sector: "Banking", ControlType: "Private", PlanType: "Stock Options",
			VestingYears: ptr(3), MaxDilutionPct: ptr(2.5), Clawback: true, DocumentCount: 1,
			Documents: []string{"https://example.com/alfa.pdf"}},
		{Company: "Alfa S.A.", Sector: "Banking", ControlType: "Private", PlanType: "Phantom",
			VestingYears: ptr(4)},
		{Company: "Beta Energia", Sector: "Energy", ControlType: "State", PlanType: "Stock Options",
			MaxDilutionPct: ptr(1)},
	}
}

func newTestPorts() (*Ports, *MockDatasetService) {
	dataset := &MockDatasetService{
		PathValue: "/data/planos.json",
		LoadFunc: func(context.Context) ([]domain.PlanRow, error) {
			return testRows(), nil
		},
	}
	return NewPorts(dataset, services.NewAnalyticsService(language.BrazilianPortuguese), nil), dataset
}

// loadedApp returns a sized app with the test table loaded.
func loadedApp(t *testing.T) (*App, *MockDatasetService) {
	t.Helper()
	ports, dataset := newTestPorts()
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(120, 40)
	app.Update(messages.DataLoaded{Rows: testRows()})
	return app, dataset
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewApp_Success(t *testing.T) {
	ports, _ := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Dataset: &MockDatasetService{}})

	assert.ErrorIs(t, err, ErrMissingAnalyticsService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)

	assert.NotNil(t, app.Init())
}

func TestApp_LoadRows(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)

	msg := app.loadRows()()

	loaded, ok := msg.(messages.DataLoaded)
	require.True(t, ok)
	assert.NoError(t, loaded.Err)
	assert.Len(t, loaded.Rows, 3)
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 100, app.width)
	assert.Equal(t, 50, app.height)
	assert.Equal(t, 100, app.status.Width())
}

func TestApp_Update_DataLoaded(t *testing.T) {
	app, _ := loadedApp(t)

	assert.Len(t, app.BaseRows(), 3)
	assert.Len(t, app.Rows(), 3)
	assert.NoError(t, app.Err())
	assert.Equal(t, status.StateReady, app.status.State())
	assert.Contains(t, app.View(), "3 of 3 plans")
	assert.Contains(t, app.View(), "2 companies")
}

func TestApp_Update_DataLoaded_Error(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(100, 30)

	app.Update(messages.DataLoaded{Err: errors.New("file not found")})

	assert.EqualError(t, app.Err(), "file not found")
	assert.Equal(t, status.StateError, app.status.State())
	assert.Contains(t, app.View(), "file not found")
}

func TestApp_Update_SelectionChanged_Refilters(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewOverview})
	app.Update(runes("f"))
	require.Equal(t, messages.ViewFilters, app.CurrentView())

	sel := domain.Selection{}.With(domain.DimensionSector, domain.NewValueSet("Energy"))
	app.Update(messages.SelectionChanged{Selection: sel})

	require.Len(t, app.Rows(), 1)
	assert.Equal(t, "Beta Energia", app.Rows()[0].Company)
	assert.Len(t, app.BaseRows(), 3)
	assert.Equal(t, messages.ViewOverview, app.CurrentView())
	assert.Contains(t, app.View(), "filtered")
}

func TestApp_Update_SelectionChanged_EmptyResult(t *testing.T) {
	app, _ := loadedApp(t)

	sel := domain.Selection{}.With(domain.DimensionSector, domain.NewValueSet())
	app.Update(messages.SelectionChanged{Selection: sel})
	app.Update(messages.ViewChanged{View: messages.ViewOverview})

	assert.Empty(t, app.Rows())
	assert.Contains(t, app.View(), "No plans match")
}

func TestApp_Update_DataLoaded_KeepsSelection(t *testing.T) {
	app, _ := loadedApp(t)
	sel := domain.Selection{}.With(domain.DimensionControlType, domain.NewValueSet("Private"))
	app.Update(messages.SelectionChanged{Selection: sel})

	app.Update(messages.DataLoaded{Rows: testRows()})

	assert.Len(t, app.Rows(), 2)
	assert.Equal(t, sel, app.Selection())
}

func TestApp_Update_ReloadKey(t *testing.T) {
	app, dataset := loadedApp(t)

	_, cmd := app.Update(runes("r"))
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, messages.ReloadRequested{}, msg)

	_, cmd = app.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, 1, dataset.Invalidated)
	assert.Equal(t, status.StateLoading, app.status.State())
	assert.IsType(t, messages.DataLoaded{}, cmd())
}

func TestApp_Update_WatchStarted(t *testing.T) {
	app, _ := loadedApp(t)
	events := make(chan string, 1)
	events <- "/data/planos.json"

	_, cmd := app.Update(messages.WatchStarted{Events: events})
	require.NotNil(t, cmd)

	msg := cmd()
	assert.Equal(t, messages.SourceChanged{Path: "/data/planos.json"}, msg)
}

func TestApp_Update_WatchStarted_NoWatcher(t *testing.T) {
	app, _ := loadedApp(t)

	_, cmd := app.Update(messages.WatchStarted{})

	assert.Nil(t, cmd)
}

func TestApp_Update_WatchStarted_Error(t *testing.T) {
	app, _ := loadedApp(t)

	_, cmd := app.Update(messages.WatchStarted{Err: errors.New("too many watches")})

	assert.Nil(t, cmd)
	assert.Contains(t, app.status.Message(), "too many watches")
}

func TestApp_Update_SourceChanged_Reloads(t *testing.T) {
	app, dataset := loadedApp(t)
	events := make(chan string)
	close(events)
	app.Update(messages.WatchStarted{Events: events})

	_, cmd := app.Update(messages.SourceChanged{Path: "/data/planos.json"})

	require.NotNil(t, cmd)
	assert.Equal(t, 1, dataset.Invalidated)
	assert.Equal(t, status.StateLoading, app.status.State())
}

func TestWaitForChange_Closed(t *testing.T) {
	events := make(chan string)
	close(events)

	cmd := waitForChange(events)

	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Nil(t, waitForChange(nil))
}

func TestApp_Update_ViewChanged(t *testing.T) {
	tests := []messages.ViewType{
		messages.ViewOverview,
		messages.ViewBenchmark,
		messages.ViewGovernance,
		messages.ViewExplorer,
		messages.ViewFilters,
		messages.ViewSettings,
		messages.ViewHelp,
		messages.ViewMenu,
	}

	for _, view := range tests {
		t.Run(view.String(), func(t *testing.T) {
			app, _ := loadedApp(t)

			app.Update(messages.ViewChanged{View: view})

			assert.Equal(t, view, app.CurrentView())
			assert.NotEmpty(t, app.View())
		})
	}
}

func TestApp_View_NotReady(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Menu(t *testing.T) {
	app, _ := loadedApp(t)

	out := app.View()

	assert.Contains(t, out, "Incentiva")
	assert.Contains(t, out, "/data/planos.json")
}

func TestApp_View_Overview(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewOverview})

	out := app.View()

	assert.Contains(t, out, "Executive Overview")
	assert.Contains(t, out, "Banking")
}

func TestApp_View_Help(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(runes("?"))

	out := app.View()

	assert.Equal(t, messages.ViewHelp, app.CurrentView())
	assert.Contains(t, out, "Help")
	assert.Contains(t, out, "/data/planos.json")
}

func TestApp_Update_HelpView_Escape(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_KeyMsg_CtrlC(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewExplorer})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_KeyMsg_QuitFromMenu(t *testing.T) {
	app, _ := loadedApp(t)

	_, cmd := app.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Quit(t *testing.T) {
	app, _ := loadedApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_Update_Explorer_TypingIgnoresHotkeys(t *testing.T) {
	app, dataset := loadedApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewExplorer})

	for _, r := range "fr?" {
		app.Update(runes(string(r)))
	}

	assert.Equal(t, messages.ViewExplorer, app.CurrentView())
	assert.Equal(t, 0, dataset.Invalidated)
}

func TestApp_Update_CompanySelected(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(messages.ViewChanged{View: messages.ViewExplorer})

	app.Update(messages.CompanySelected{Company: "Alfa S.A."})

	require.NotNil(t, app.explorerView.Dossier())
	assert.Equal(t, "Alfa S.A.", app.explorerView.Dossier().Company)
	assert.Contains(t, app.View(), "Stock Options")
}

func TestApp_Update_FiltersKey_FromMenu(t *testing.T) {
	app, _ := loadedApp(t)

	app.Update(runes("f"))

	assert.Equal(t, messages.ViewFilters, app.CurrentView())
	assert.Contains(t, app.View(), "Sector")
}

func TestApp_Update_FiltersApply_EndToEnd(t *testing.T) {
	app, _ := loadedApp(t)
	app.Update(runes("f"))

	// Uncheck the first sector, then apply.
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Nil(t, cmd)
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	require.Len(t, app.Rows(), 1)
	assert.Equal(t, "Energy", app.Rows()[0].Sector)
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := loadedApp(t)

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "boom")
}

func TestApp_SetDimensions(t *testing.T) {
	ports, _ := newTestPorts()
	app, _ := NewApp(ports)

	app.SetDimensions(120, 40)

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Equal(t, 40, app.height)
}
