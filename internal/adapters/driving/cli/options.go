package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the values each filter accepts",
	Long: `Lists the distinct sectors, plan types and control types observed in
the dataset. These are the values --sector, --plan-type and --control
accept.`,
	Args: cobra.NoArgs,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, _ []string) error {
	rows, _, err := loadRows(cmd)
	if err != nil {
		return err
	}

	opts := analyticsService.Options(rows)
	if optionsJSON {
		return printJSON(cmd, opts)
	}

	for i, d := range domain.Dimensions() {
		if i > 0 {
			cmd.Println()
		}
		values := opts.Values(d)
		cmd.Printf("%s (%d)\n", d.Label(), len(values))
		for _, v := range values {
			cmd.Printf("  %s\n", v)
		}
	}
	return nil
}
