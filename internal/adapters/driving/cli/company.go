package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

var (
	companyJSON bool
	companyFind bool
)

var companyCmd = &cobra.Command{
	Use:   "company <name>",
	Short: "Show a company's plans and source documents",
	Long: `Shows the dossier of one company: sector, control type, and each
plan with its vesting period, dilution cap, clawback flag and source
documents. With --find, lists companies whose name contains the argument,
ignoring case and accents.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompany,
}

func init() {
	companyCmd.Flags().BoolVar(&companyJSON, "json", false, "output as JSON")
	companyCmd.Flags().BoolVar(&companyFind, "find", false, "search company names instead of showing one")
	addFilterFlags(companyCmd)
	rootCmd.AddCommand(companyCmd)
}

func runCompany(cmd *cobra.Command, args []string) error {
	rows, _, err := loadRows(cmd)
	if err != nil {
		return err
	}

	if companyFind {
		return runCompanyFind(cmd, rows, args[0])
	}

	dossier, err := analyticsService.Dossier(rows, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFoundError(rows, args[0])
		}
		return err
	}

	if companyJSON {
		return printJSON(cmd, dossier)
	}

	printDossier(cmd, dossier)
	return nil
}

func runCompanyFind(cmd *cobra.Command, rows []domain.PlanRow, query string) error {
	names := analyticsService.FindCompanies(rows, query)
	if companyJSON {
		return printJSON(cmd, names)
	}
	if len(names) == 0 {
		cmd.Printf("No companies match %q.\n", query)
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

// notFoundError reports a missing company, suggesting close names.
func notFoundError(rows []domain.PlanRow, name string) error {
	suggestions := analyticsService.FindCompanies(rows, name)
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	if len(suggestions) == 0 {
		return fmt.Errorf("company %q: %w", name, domain.ErrNotFound)
	}
	return fmt.Errorf("company %q: %w (did you mean: %s?)", name, domain.ErrNotFound,
		strings.Join(suggestions, ", "))
}

func printDossier(cmd *cobra.Command, d *domain.Dossier) {
	cmd.Println(d.Company)
	cmd.Println(strings.Repeat("=", len([]rune(d.Company))))
	cmd.Printf("  Sector:        %s\n", d.Sector)
	cmd.Printf("  Control type:  %s\n", d.ControlType)
	cmd.Printf("  Plans:         %d\n", len(d.Plans))
	cmd.Printf("  Documents:     %d\n", d.DocumentCount())
	cmd.Println()

	for i := range d.Plans {
		p := &d.Plans[i]
		cmd.Printf("[%d] %s\n", i+1, p.PlanType)
		cmd.Printf("    Vesting:       %s\n", formatMeasure(p.VestingYears, "%.1f years"))
		cmd.Printf("    Max dilution:  %s\n", formatMeasure(p.MaxDilutionPct, "%.2f%%"))
		cmd.Printf("    Clawback:      %s\n", p.ClawbackLabel())
		if len(p.Documents) == 0 {
			cmd.Println("    Documents:     (none)")
		} else {
			cmd.Println("    Documents:")
			for _, doc := range p.Documents {
				cmd.Printf("      - %s\n", doc)
			}
		}
		cmd.Println()
	}
}
