package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

var (
	rowsJSON  bool
	rowsLimit int
)

var rowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "List the flattened plan table",
	Long: `Lists one row per (company, plan) pair, in dataset order, after
applying the filter flags.`,
	Args: cobra.NoArgs,
	RunE: runRows,
}

func init() {
	rowsCmd.Flags().BoolVar(&rowsJSON, "json", false, "output as JSON")
	rowsCmd.Flags().IntVarP(&rowsLimit, "limit", "n", 0, "maximum number of rows (0 for all)")
	addFilterFlags(rowsCmd)
	rootCmd.AddCommand(rowsCmd)
}

func runRows(cmd *cobra.Command, _ []string) error {
	rows, _, err := loadRows(cmd)
	if err != nil {
		return err
	}

	return printRows(cmd, rows, rowsLimit, rowsJSON)
}

// printRows prints at most limit rows (0 for all) as a table or JSON.
func printRows(cmd *cobra.Command, rows []domain.PlanRow, limit int, asJSON bool) error {
	total := len(rows)
	if limit > 0 && limit < total {
		rows = rows[:limit]
	}

	if asJSON {
		if rows == nil {
			rows = []domain.PlanRow{}
		}
		return printJSON(cmd, rows)
	}

	if total == 0 {
		cmd.Println("No plans match the current filters.")
		return nil
	}

	headers := []string{"Company", "Sector", "Control", "Plan Type", "Vesting (y)", "Max Dil. %", "Clawback", "Docs"}
	table := make([][]string, 0, len(rows))
	for i := range rows {
		r := &rows[i]
		table = append(table, []string{
			r.Company,
			r.Sector,
			r.ControlType,
			r.PlanType,
			formatFloat(r.VestingYears, "%.1f"),
			formatFloat(r.MaxDilutionPct, "%.2f"),
			r.ClawbackLabel(),
			strconv.Itoa(r.DocumentCount),
		})
	}

	cmd.Println(renderTable(cmd, headers, table))
	if len(rows) < total {
		cmd.Printf("Showing %d of %d rows.\n", len(rows), total)
	} else {
		cmd.Printf("%d rows.\n", total)
	}
	return nil
}
