package menu

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
)

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles())

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Len(t, view.items, 8)
	assert.Equal(t, 0, view.Selected())
	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.Nil(t, view.Init())
}

func TestView_Update_WindowSize(t *testing.T) {
	view := NewView(nil)

	updated, cmd := view.Update(tea.WindowSizeMsg{Width: 100, Height: 50})

	assert.Equal(t, view, updated)
	assert.Nil(t, cmd)
	assert.True(t, view.ready)
	assert.Equal(t, 100, view.width)
	assert.Equal(t, 50, view.height)
}

func TestView_Update_Navigate(t *testing.T) {
	view := NewView(nil)

	view.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, view.Selected())

	j := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	for i := 0; i < 10; i++ {
		view.Update(j)
	}
	assert.Equal(t, 7, view.Selected())

	view.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 6, view.Selected())

	k := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	for i := 0; i < 10; i++ {
		view.Update(k)
	}
	assert.Equal(t, 0, view.Selected())
}

func TestView_Update_Enter_ViewChange(t *testing.T) {
	tests := []struct {
		index int
		want  messages.ViewType
	}{
		{0, messages.ViewOverview},
		{1, messages.ViewBenchmark},
		{2, messages.ViewGovernance},
		{3, messages.ViewExplorer},
		{4, messages.ViewFilters},
		{5, messages.ViewSettings},
		{6, messages.ViewHelp},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			view := NewView(nil)
			view.selected = tt.index

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			require.NotNil(t, cmd)
			changed, ok := cmd().(messages.ViewChanged)
			require.True(t, ok)
			assert.Equal(t, tt.want, changed.View)
		})
	}
}

func TestView_Update_Enter_Quit(t *testing.T) {
	view := NewView(nil)
	view.selected = 7

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Update_Q(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_Update_DigitJumps(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})

	assert.Equal(t, 3, view.Selected())
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewExplorer}, cmd())
}

func TestView_Update_DigitOutOfRange(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, view.Selected())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil)

	assert.Contains(t, view.View(), "Initialising")
}

func TestView_View_Ready(t *testing.T) {
	view := NewView(nil)
	view.SetDimensions(100, 30)
	view.SetSource("/data/planos.json")

	output := view.View()

	assert.Contains(t, output, "Incentiva")
	assert.Contains(t, output, "/data/planos.json")
	assert.Contains(t, output, "Executive Overview")
	assert.Contains(t, output, "Company Explorer")
	assert.Contains(t, output, "Quit")
	assert.Contains(t, output, ">")
}
