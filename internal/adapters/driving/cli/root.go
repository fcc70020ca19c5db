// Package cli implements the incentiva command line.
//
// Commands read the core services from package variables. The binary's
// main package supplies a Wiring function that builds those services once
// the root flags are parsed; tests assign the variables directly.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
	"github.com/custodia-labs/incentiva/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Root flags.
var (
	dataPath  string
	configDir string
	verbose   bool
)

// Services used by the commands.
var (
	settingsService  driving.SettingsService
	datasetService   driving.DatasetService
	analyticsService driving.AnalyticsService
	openExporter     ExporterFunc
	topN             = domain.DefaultTopN
)

// ExporterFunc opens an export service writing to the database at dbPath.
// The returned closer releases the database.
type ExporterFunc func(dbPath string) (driving.ExportService, io.Closer, error)

// Options are the resolved root flags handed to the wiring function.
type Options struct {
	DataPath  string
	ConfigDir string
	Verbose   bool
}

// Services are the core services the commands use.
type Services struct {
	Settings  driving.SettingsService
	Dataset   driving.DatasetService
	Analytics driving.AnalyticsService
	Exporter  ExporterFunc

	// TopN is how many sectors the sector charts show.
	TopN int
}

// Wiring builds the services from the resolved root flags.
type Wiring func(opts Options) (*Services, error)

var wiring Wiring

var rootCmd = &cobra.Command{
	Use:   "incentiva",
	Short: "Explore corporate equity-incentive plans",
	Long: `incentiva loads a JSON dataset of corporate equity-incentive plans
(vesting periods, dilution caps, clawback clauses, source documents) and
lets you explore it from the terminal.

Run "incentiva dashboard" for the interactive dashboard, or use the
summary, rows, company and options commands for scriptable output.`,
	SilenceUsage:      true,
	PersistentPreRunE: configure,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "dataset JSON file (overrides data.path)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.incentiva)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// SetWiring sets the function that builds services before each command.
func SetWiring(w Wiring) {
	wiring = w
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configure applies the root flags and wires services.
func configure(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if wiring == nil {
		return nil
	}

	services, err := wiring(Options{
		DataPath:  dataPath,
		ConfigDir: configDir,
		Verbose:   verbose,
	})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	applyServices(services)

	logger.Debug("Command %s using dataset %q", cmd.Name(), datasetPath())
	return nil
}

func applyServices(s *Services) {
	if s == nil {
		return
	}
	settingsService = s.Settings
	datasetService = s.Dataset
	analyticsService = s.Analytics
	openExporter = s.Exporter
	if s.TopN > 0 {
		topN = s.TopN
	}
}

func datasetPath() string {
	if datasetService == nil {
		return ""
	}
	return datasetService.Path()
}

// loadRows loads the table and applies the command's filter flags. It
// returns the selection it applied.
func loadRows(cmd *cobra.Command) ([]domain.PlanRow, domain.Selection, error) {
	if datasetService == nil {
		return nil, domain.Selection{}, errors.New("dataset service not configured")
	}
	if analyticsService == nil {
		return nil, domain.Selection{}, errors.New("analytics service not configured")
	}

	sel, err := selectionFromFlags(cmd)
	if err != nil {
		return nil, domain.Selection{}, err
	}

	rows, err := datasetService.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoDataPath) {
			return nil, sel, fmt.Errorf("%w: pass --data or run \"incentiva settings set data.path <file>\"", err)
		}
		return nil, sel, err
	}

	return analyticsService.Filter(rows, sel), sel, nil
}
