package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the dataset location, change detection, duplicate
handling and chart options. Settings live in ~/.incentiva/config.toml.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Keys:
  data.path        - dataset JSON file
  data.watch       - reload the dashboard when the file changes (true/false)
  data.duplicates  - duplicate name handling: merge, keep_last or reject
  charts.top_n     - number of sectors in sector charts`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsReset,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Data]")
	path := settings.Data.Path
	if path == "" {
		path = "(not set)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Printf("  Watch: %s\n", yesNo(settings.Data.Watch))
	cmd.Printf("  Duplicates: %s (%s)\n", settings.Data.Duplicates, settings.Data.Duplicates.Description())
	cmd.Println()

	cmd.Println("[Charts]")
	cmd.Printf("  Top sectors: %d\n", settings.Charts.TopN)
	cmd.Println()

	if settings.Data.Path == "" {
		cmd.Println("No dataset configured. Run 'incentiva settings set data.path <file>' or pass --data.")
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], strings.TrimSpace(args[1]))
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Reset(args[0]); err != nil {
		return fmt.Errorf("failed to reset %s: %w", args[0], err)
	}
	cmd.Printf("Reset %s to its default\n", args[0])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings := *current

	cmd.Println("Incentiva Settings Wizard")
	cmd.Println("=========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Dataset
	cmd.Println("Step 1: Dataset file")
	cmd.Println("--------------------")
	cmd.Printf("Path [%s]: ", current.Data.Path)
	if input := readLine(reader); input != "" {
		settings.Data.Path = input
	}
	cmd.Println()

	// Step 2: Change detection
	cmd.Println("Step 2: Reload the dashboard when the file changes")
	cmd.Println("--------------------------------------------------")
	cmd.Printf("Watch (y/n) [%s]: ", yesNo(current.Data.Watch))
	settings.Data.Watch = parseYesNo(readLine(reader), current.Data.Watch)
	cmd.Println()

	// Step 3: Duplicates
	cmd.Println("Step 3: Duplicate company or plan names")
	cmd.Println("---------------------------------------")
	policies := []domain.DuplicatePolicy{domain.DuplicateMerge, domain.DuplicateKeepLast, domain.DuplicateReject}
	defaultChoice := 1
	for i, p := range policies {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
		if p == current.Data.Duplicates {
			defaultChoice = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultChoice)
	settings.Data.Duplicates = policies[parseChoice(readLine(reader), len(policies), defaultChoice)-1]
	cmd.Println()

	// Step 4: Charts
	cmd.Println("Step 4: Sector charts")
	cmd.Println("---------------------")
	cmd.Printf("Sectors to show [%d]: ", current.Charts.TopN)
	settings.Charts.TopN = parseChoice(readLine(reader), 1000, current.Charts.TopN)
	cmd.Println()

	if err := settingsService.Save(&settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(input) {
	case "y", "yes", "true", "s", "sim":
		return true
	case "n", "no", "false", "nao", "não":
		return false
	default:
		return defaultVal
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
