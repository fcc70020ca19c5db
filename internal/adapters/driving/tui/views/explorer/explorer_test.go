package explorer

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/services"
)

func ptr(v float64) *float64 { return &v }

func testRows() []domain.PlanRow {
	return []domain.PlanRow{
		{
			Company: "Companhia São Paulo", Sector: "Utilities", ControlType: "State",
			PlanType: "Stock Options", VestingYears: ptr(3), MaxDilutionPct: ptr(1.5), Clawback: true,
			DocumentCount: 2, Documents: []string{"https://example.com/fre.pdf", "ata-2023.pdf"},
		},
		{
			Company: "Companhia São Paulo", Sector: "Utilities", ControlType: "State",
			PlanType: "Phantom",
		},
		{Company: "Acme", Sector: "Energy", ControlType: "Private", PlanType: "Stock Options"},
		{Company: "Beta", Sector: "Banking", ControlType: "Private", PlanType: "Phantom"},
	}
}

func newTestView() *View {
	v := NewView(nil, services.NewAnalyticsService(language.BrazilianPortuguese))
	v.SetDimensions(100, 40)
	v.SetRows(testRows())
	return v
}

func typeText(v *View, s string) {
	for _, r := range s {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Equal(t, ModeSearch, v.Mode())
	assert.NotNil(t, v.Init())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_SetRows_ListsAllCompanies(t *testing.T) {
	v := newTestView()

	assert.Equal(t, 3, v.Matches())
	assert.Equal(t, "Acme", v.list.Items()[0].Label)
}

func TestView_Search_IgnoresAccents(t *testing.T) {
	v := newTestView()

	typeText(v, "sao")

	require.Equal(t, 1, v.Matches())
	assert.Equal(t, "Companhia São Paulo", v.list.Items()[0].Label)
	assert.Contains(t, v.View(), "Companhia São Paulo")
}

func TestView_Search_NoMatches(t *testing.T) {
	v := newTestView()

	typeText(v, "zzz")

	assert.Equal(t, 0, v.Matches())
	assert.Contains(t, v.View(), "No items")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_Enter_OpensDossier(t *testing.T) {
	v := newTestView()
	typeText(v, "paulo")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, messages.CompanySelected{Company: "Companhia São Paulo"}, msg)

	v.Update(msg)

	assert.Equal(t, ModeDossier, v.Mode())
	require.NotNil(t, v.Dossier())
	assert.Len(t, v.Dossier().Plans, 2)

	out := v.View()
	assert.Contains(t, out, "Utilities")
	assert.Contains(t, out, "Stock Options")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, domain.ClawbackYes)
	assert.Contains(t, out, domain.Unavailable)
	assert.Contains(t, out, "ata-2023.pdf")
	assert.Contains(t, out, "\x1b]8;;https://example.com/fre.pdf")
	assert.Contains(t, out, "no documents")
}

func TestView_ListMode_Navigation(t *testing.T) {
	v := newTestView()

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, ModeList, v.Mode())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 1, v.list.Selected())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.CompanySelected{Company: "Beta"}, cmd())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, ModeSearch, v.Mode())
}

func TestView_ListMode_SlashFocusesSearch(t *testing.T) {
	v := newTestView()
	v.Update(tea.KeyMsg{Type: tea.KeyDown})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})

	assert.Equal(t, ModeSearch, v.Mode())
	assert.Equal(t, "", v.input.Value())
}

func TestView_Dossier_EscReturnsToList(t *testing.T) {
	v := newTestView()
	v.Update(messages.CompanySelected{Company: "Acme"})
	require.Equal(t, ModeDossier, v.Mode())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.Equal(t, ModeList, v.Mode())
	assert.Nil(t, v.Dossier())
}

func TestView_Dossier_Scroll(t *testing.T) {
	v := newTestView()
	v.SetDimensions(100, 6)
	v.Update(messages.CompanySelected{Company: "Companhia São Paulo"})

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, v.offset)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, v.offset)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, v.offset)
	assert.Contains(t, v.View(), "[j/k] scroll")
}

func TestView_CompanySelected_Unknown(t *testing.T) {
	v := newTestView()

	v.Update(messages.CompanySelected{Company: "Nobody"})

	assert.Equal(t, ModeList, v.Mode())
	assert.True(t, errors.Is(v.Err(), domain.ErrNotFound))
	assert.Contains(t, v.View(), "Nobody")
}

func TestView_SetRows_ClosesFilteredOutDossier(t *testing.T) {
	v := newTestView()
	v.Update(messages.CompanySelected{Company: "Acme"})

	v.SetRows(testRows()[3:])

	assert.Equal(t, ModeList, v.Mode())
	assert.Nil(t, v.Dossier())
	assert.Equal(t, 1, v.Matches())
}

func TestView_SetRows_RebuildsOpenDossier(t *testing.T) {
	v := newTestView()
	v.Update(messages.CompanySelected{Company: "Companhia São Paulo"})

	v.SetRows(testRows()[:1])

	require.NotNil(t, v.Dossier())
	assert.Len(t, v.Dossier().Plans, 1)
}

func TestView_Reset(t *testing.T) {
	v := newTestView()
	typeText(v, "acme")
	v.Update(messages.CompanySelected{Company: "Acme"})

	v.Reset()

	assert.Equal(t, ModeSearch, v.Mode())
	assert.Equal(t, "", v.input.Value())
	assert.Nil(t, v.Dossier())
	assert.Equal(t, 3, v.Matches())
}

func TestView_Esc_BackToMenu(t *testing.T) {
	v := newTestView()

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestHyperlink(t *testing.T) {
	assert.Equal(t, "report.pdf", hyperlink("report.pdf"))
	assert.Equal(t, "\x1b]8;;https://x.io\x1b\\https://x.io\x1b]8;;\x1b\\", hyperlink("https://x.io"))
}
