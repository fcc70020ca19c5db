package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/tui"
	"github.com/custodia-labs/incentiva/internal/logger"
)

var dashboardLogFile string

// dashboardCmd launches the interactive dashboard.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

The dashboard shows the executive overview, the vesting/dilution
benchmark, clawback governance and a company explorer. Filters set with
[f] apply to every page. With data.watch enabled the table reloads
whenever the dataset file changes.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Apply
  Space    - Toggle a filter value
  f        - Filters
  r        - Reload the dataset
  Esc      - Back
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardLogFile, "log-file", "", "append log output to this file while the dashboard runs")
	rootCmd.AddCommand(dashboardCmd)
}

// redirectLogs points the logger away from the terminal for the lifetime
// of the dashboard. The returned function restores the previous writer.
func redirectLogs(path string) (func(), error) {
	previous := logger.Output()
	if path == "" {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(previous) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(previous)
		_ = f.Close()
	}, nil
}

func runDashboard(cmd *cobra.Command, _ []string) (err error) {
	if datasetService == nil || analyticsService == nil {
		return errors.New("dashboard: services not configured")
	}

	restore, err := redirectLogs(dashboardLogFile)
	if err != nil {
		return err
	}
	defer restore()

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			restore()
			fmt.Fprintf(os.Stderr, "Panic in dashboard: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("dashboard panic: %v", r)
		}
	}()

	ports := tui.NewPorts(datasetService, analyticsService, settingsService)
	ports.TopN = topN

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create dashboard: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
