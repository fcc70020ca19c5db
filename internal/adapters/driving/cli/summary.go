package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

var (
	summaryJSON bool
	summaryTop  int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show headline KPIs and distributions",
	Long: `Shows the executive overview of the (optionally filtered) dataset:
company and plan counts, mean maximum dilution, clawback adoption, the
sectors with the most plans, and the plan-type distribution.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "output as JSON")
	summaryCmd.Flags().IntVar(&summaryTop, "top", 0, "number of sectors to list (default charts.top_n)")
	addFilterFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}

// summaryReport is the JSON shape of the summary command.
type summaryReport struct {
	Summary        domain.Summary    `json:"summary"`
	TopSectors     []domain.Count    `json:"top_sectors"`
	PlanTypes      []domain.Count    `json:"plan_types"`
	Clawback       []domain.Count    `json:"clawback"`
	SectorClawback []domain.CrossTab `json:"sector_clawback"`
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if summaryTop < 0 {
		return errors.New("--top must not be negative")
	}

	rows, sel, err := loadRows(cmd)
	if err != nil {
		return err
	}

	n := topN
	if summaryTop > 0 {
		n = summaryTop
	}

	report := summaryReport{
		Summary:        analyticsService.Summarize(rows),
		TopSectors:     analyticsService.SectorCounts(rows, n),
		PlanTypes:      analyticsService.PlanTypeCounts(rows),
		Clawback:       analyticsService.ClawbackShare(rows),
		SectorClawback: analyticsService.SectorClawback(rows, n),
	}

	if summaryJSON {
		return printJSON(cmd, report)
	}

	printSummary(cmd, &report, describeSelection(sel))
	return nil
}

func printSummary(cmd *cobra.Command, r *summaryReport, filters string) {
	cmd.Println("Executive Overview")
	cmd.Println("==================")
	if filters != "" {
		cmd.Printf("Filters: %s\n", filters)
	}
	cmd.Println()

	s := r.Summary
	cmd.Printf("  Companies:          %d\n", s.Companies)
	cmd.Printf("  Plans:              %d\n", s.Plans)
	cmd.Printf("  Mean max dilution:  %s\n", s.MeanDilution.Format("%.2f%%"))
	cmd.Printf("  Clawback adoption:  %.1f%% (%d of %d plans)\n", s.ClawbackPct, s.ClawbackCount, s.Plans)
	cmd.Println()

	if s.Plans == 0 {
		cmd.Println("No plans match the current filters.")
		return
	}

	cmd.Printf("Top %d sectors by plan count\n", len(r.TopSectors))
	printCounts(cmd, r.TopSectors, s.Plans)
	cmd.Println()

	cmd.Println("Plan types")
	printCounts(cmd, r.PlanTypes, s.Plans)
	cmd.Println()

	cmd.Println("Clawback by sector")
	rows := make([][]string, 0, len(r.SectorClawback))
	for _, c := range r.SectorClawback {
		rows = append(rows, []string{
			c.Sector,
			strconv.Itoa(c.WithClawback),
			strconv.Itoa(c.WithoutClawback),
		})
	}
	cmd.Println(renderTable(cmd, []string{"Sector", domain.ClawbackYes, domain.ClawbackNo}, rows))
}

// printCounts prints a labelled horizontal bar chart. Shares are taken
// over total.
func printCounts(cmd *cobra.Command, counts []domain.Count, total int) {
	width, maxCount := 0, 0
	for _, c := range counts {
		width = max(width, len([]rune(c.Label)))
		maxCount = max(maxCount, c.Count)
	}
	width = min(width, maxCellWidth)
	for _, c := range counts {
		cmd.Printf("  %-*s %5d %6s %s\n", width, clip(c.Label, width), c.Count,
			percent(c.Count, total), bar(c.Count, maxCount, 30))
	}
}

// percent formats part of total as a percentage.
func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}
