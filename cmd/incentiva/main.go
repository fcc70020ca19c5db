// Command incentiva explores corporate equity-incentive plans from the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/text/language"

	"github.com/custodia-labs/incentiva/internal/adapters/driven/config/file"
	"github.com/custodia-labs/incentiva/internal/adapters/driven/dataset/jsonfile"
	"github.com/custodia-labs/incentiva/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/incentiva/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/incentiva/internal/adapters/driven/watch"
	"github.com/custodia-labs/incentiva/internal/adapters/driving/cli"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
	"github.com/custodia-labs/incentiva/internal/core/services"
	"github.com/custodia-labs/incentiva/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetWiring(wire)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// wire builds the core services from the resolved root flags.
func wire(opts cli.Options) (*cli.Services, error) {
	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		// Commands still run on defaults and flags without a writable config dir.
		logger.Warn("Config unavailable, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	path := strings.TrimSpace(opts.DataPath)
	if path == "" {
		path = settings.Data.Path
	}

	reader := jsonfile.NewReader(settings.Data.Duplicates)
	dataset := services.NewDatasetService(reader, memory.NewTableCache(), path)
	if settings.Data.Watch {
		dataset = dataset.WithNotifier(watch.NewNotifier(0))
	}

	return &cli.Services{
		Settings:  settingsService,
		Dataset:   dataset,
		Analytics: services.NewAnalyticsService(language.BrazilianPortuguese),
		Exporter: func(dbPath string) (driving.ExportService, io.Closer, error) {
			store, err := sqlite.NewStore(dbPath)
			if err != nil {
				return nil, nil, err
			}
			return services.NewExportService(dataset, store), store, nil
		},
		TopN: settings.Charts.TopN,
	}, nil
}
