// Package chart draws text charts for the dashboard views.
package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/incentiva/internal/core/domain"
)

const (
	fullBlock  = "█"
	lightBlock = "░"
)

// Bars draws a horizontal bar chart of counts in the given series colour.
func Bars(s *styles.Styles, counts []domain.Count, width, series int) string {
	if len(counts) == 0 {
		return s.Muted.Render("No data")
	}

	labelWidth := labelColumn(width, len(counts), func(i int) string { return counts[i].Label })
	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
	}
	valueWidth := len(fmt.Sprint(maxCount))
	barWidth := max(1, width-labelWidth-valueWidth-3)

	style := s.SeriesStyle(series)
	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		lines = append(lines, fmt.Sprintf("%s %s %s",
			pad(c.Label, labelWidth),
			style.Render(scale(c.Count, maxCount, barWidth, fullBlock)),
			s.Muted.Render(fmt.Sprintf("%*d", valueWidth, c.Count))))
	}
	return strings.Join(lines, "\n")
}

// Stacked draws one bar per sector split into rows with and without clawback.
func Stacked(s *styles.Styles, tabs []domain.CrossTab, width int) string {
	if len(tabs) == 0 {
		return s.Muted.Render("No data")
	}

	labelWidth := labelColumn(width, len(tabs), func(i int) string { return tabs[i].Sector })
	maxTotal := 0
	for _, t := range tabs {
		maxTotal = max(maxTotal, t.Total())
	}
	valueWidth := len(fmt.Sprint(maxTotal))
	barWidth := max(1, width-labelWidth-2*valueWidth-5)

	with := s.SeriesStyle(2)
	without := s.SeriesStyle(3)
	lines := make([]string, 0, len(tabs)+2)
	for _, t := range tabs {
		lines = append(lines, fmt.Sprintf("%s %s%s %s",
			pad(t.Sector, labelWidth),
			with.Render(scale(t.WithClawback, maxTotal, barWidth, fullBlock)),
			without.Render(scale(t.WithoutClawback, maxTotal, barWidth, lightBlock)),
			s.Muted.Render(fmt.Sprintf("%*d/%*d", valueWidth, t.WithClawback, valueWidth, t.Total()))))
	}
	lines = append(lines, "",
		with.Render(fullBlock)+" "+domain.ClawbackYes+"  "+without.Render(lightBlock)+" "+domain.ClawbackNo)
	return strings.Join(lines, "\n")
}

// Scatter plots points as vesting years (x) against max dilution (y).
// A cell holding several points shows their count.
func Scatter(s *styles.Styles, points []domain.Point, width, height int) string {
	if len(points) == 0 {
		return s.Muted.Render("No plans with both vesting and dilution known")
	}

	minX, maxX := points[0].VestingYears, points[0].VestingYears
	minY, maxY := points[0].MaxDilutionPct, points[0].MaxDilutionPct
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.VestingYears), max(maxX, p.VestingYears)
		minY, maxY = min(minY, p.MaxDilutionPct), max(maxY, p.MaxDilutionPct)
	}

	yLabel := max(len(formatAxis(minY)), len(formatAxis(maxY)))
	cols := max(10, width-yLabel-2)
	rows := max(4, height-3)

	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
	}
	for _, p := range points {
		c := position(p.VestingYears, minX, maxX, cols)
		r := rows - 1 - position(p.MaxDilutionPct, minY, maxY, rows)
		grid[r][c]++
	}

	dot := s.SeriesStyle(0)
	lines := make([]string, 0, rows+3)
	for r, cells := range grid {
		axis := strings.Repeat(" ", yLabel)
		switch r {
		case 0:
			axis = fmt.Sprintf("%*s", yLabel, formatAxis(maxY))
		case rows - 1:
			axis = fmt.Sprintf("%*s", yLabel, formatAxis(minY))
		}
		var b strings.Builder
		for _, n := range cells {
			b.WriteString(marker(n, dot))
		}
		lines = append(lines, s.Muted.Render(axis+" │")+b.String())
	}
	lines = append(lines,
		s.Muted.Render(strings.Repeat(" ", yLabel)+" └"+strings.Repeat("─", cols)),
		s.Muted.Render(fmt.Sprintf("%*s  %-*s%s", yLabel, "", cols-len(formatAxis(maxX)), formatAxis(minX), formatAxis(maxX))),
		s.Muted.Render(fmt.Sprintf("%*s  vesting (years) →   ↑ max dilution (%%)", yLabel, "")))
	return strings.Join(lines, "\n")
}

func marker(n int, style lipgloss.Style) string {
	switch {
	case n == 0:
		return " "
	case n == 1:
		return style.Render("•")
	case n < 10:
		return style.Render(fmt.Sprint(n))
	default:
		return style.Render("+")
	}
}

// position maps v in [lo, hi] to a cell index in [0, n).
func position(v, lo, hi float64, n int) int {
	if hi <= lo {
		return n / 2
	}
	i := int((v - lo) / (hi - lo) * float64(n-1))
	return min(max(i, 0), n-1)
}

func formatAxis(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// scale returns a bar of at most width cells proportional to n/total.
// A non-zero count always gets at least one cell.
func scale(n, total, width int, block string) string {
	if n <= 0 || total <= 0 {
		return ""
	}
	cells := n * width / total
	if cells == 0 {
		cells = 1
	}
	return strings.Repeat(block, cells)
}

// labelColumn sizes the label column to the widest label, capped at a
// third of the chart width.
func labelColumn(width, n int, label func(int) string) int {
	w := 0
	for i := 0; i < n; i++ {
		w = max(w, runewidth.StringWidth(label(i)))
	}
	return max(4, min(w, width/3))
}

// pad truncates or pads s to exactly width display columns.
func pad(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	return runewidth.FillRight(s, width)
}

// Percent formats part over whole as a percentage with one decimal.
func Percent(part, whole int) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(whole))
}
