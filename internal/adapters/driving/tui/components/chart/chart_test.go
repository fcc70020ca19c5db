package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
)

func TestBars(t *testing.T) {
	s := styles.DefaultStyles()
	counts := []domain.Count{{Label: "Energy", Count: 10}, {Label: "Banking", Count: 5}}

	out := Bars(s, counts, 60, 0)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Energy")
	assert.Contains(t, lines[0], "10")
	assert.Contains(t, lines[1], "Banking")
	assert.Greater(t, strings.Count(lines[0], fullBlock), strings.Count(lines[1], fullBlock))
	for _, l := range lines {
		assert.LessOrEqual(t, lipgloss.Width(l), 60)
	}
}

func TestBars_Empty(t *testing.T) {
	assert.Contains(t, Bars(styles.DefaultStyles(), nil, 60, 0), "No data")
}

func TestStacked(t *testing.T) {
	s := styles.DefaultStyles()
	tabs := []domain.CrossTab{
		{Sector: "Energy", WithClawback: 3, WithoutClawback: 1},
		{Sector: "Banking", WithClawback: 0, WithoutClawback: 2},
	}

	out := Stacked(s, tabs, 60)

	assert.Contains(t, out, "Energy")
	assert.Contains(t, out, "3/4")
	assert.Contains(t, out, "0/2")
	assert.Contains(t, out, domain.ClawbackYes)
	assert.Contains(t, out, domain.ClawbackNo)
}

func TestStacked_Empty(t *testing.T) {
	assert.Contains(t, Stacked(styles.DefaultStyles(), nil, 60), "No data")
}

func TestScatter(t *testing.T) {
	s := styles.DefaultStyles()
	points := []domain.Point{
		{Company: "A", VestingYears: 1, MaxDilutionPct: 2},
		{Company: "B", VestingYears: 4, MaxDilutionPct: 10},
		{Company: "C", VestingYears: 4, MaxDilutionPct: 10},
	}

	out := Scatter(s, points, 40, 12)

	assert.Contains(t, out, "•")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "vesting (years)")
}

func TestScatter_SinglePoint(t *testing.T) {
	out := Scatter(styles.DefaultStyles(), []domain.Point{{VestingYears: 3, MaxDilutionPct: 5}}, 40, 10)

	assert.Contains(t, out, "•")
}

func TestScatter_Empty(t *testing.T) {
	assert.Contains(t, Scatter(styles.DefaultStyles(), nil, 40, 10), "No plans")
}

func TestPosition(t *testing.T) {
	assert.Equal(t, 0, position(1, 1, 5, 10))
	assert.Equal(t, 9, position(5, 1, 5, 10))
	assert.Equal(t, 5, position(3, 3, 3, 10))
	assert.Equal(t, 9, position(7, 1, 5, 10))
}

func TestScale(t *testing.T) {
	assert.Equal(t, "", scale(0, 10, 20, fullBlock))
	assert.Equal(t, "", scale(3, 0, 20, fullBlock))
	assert.Equal(t, fullBlock, scale(1, 1000, 20, fullBlock))
	assert.Equal(t, strings.Repeat(fullBlock, 10), scale(5, 10, 20, fullBlock))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", pad("ab", 4))
	assert.Equal(t, 4, lipgloss.Width(pad("Energia Elétrica", 4)))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.0%", Percent(0, 0))
	assert.Equal(t, "50.0%", Percent(1, 2))
	assert.Equal(t, "33.3%", Percent(1, 3))
}
