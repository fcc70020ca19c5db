package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// maxCellWidth caps a table cell when the output is not a terminal.
const maxCellWidth = 48

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// terminalWidth returns the width of the command's output terminal, or 0
// when output is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// renderTable draws rows under headers. Cells are truncated so the table
// fits the terminal, or to maxCellWidth when not writing to one.
func renderTable(cmd *cobra.Command, headers []string, rows [][]string) string {
	limit := maxCellWidth
	if w := terminalWidth(cmd); w > 0 && len(headers) > 0 {
		// Borders and padding take three columns per cell.
		limit = max(8, (w-1)/len(headers)-3)
	}

	clipped := make([][]string, len(rows))
	for i, row := range rows {
		clipped[i] = make([]string, len(row))
		for j, cell := range row {
			clipped[i][j] = clip(cell, limit)
		}
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(clipped...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true)
			}
			return cell
		})
	return t.String()
}

// clip shortens s to width display columns, marking the cut with "…".
func clip(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// formatFloat renders an optional number, or "-" when unknown.
func formatFloat(v *float64, format string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(format, *v)
}

// formatMeasure formats a known value with its unit, or domain.Unavailable.
func formatMeasure(v *float64, format string) string {
	if v == nil {
		return domain.Unavailable
	}
	return fmt.Sprintf(format, *v)
}

// bar draws a proportional bar of at most width cells.
func bar(count, maxCount, width int) string {
	if maxCount <= 0 || count <= 0 {
		return ""
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
