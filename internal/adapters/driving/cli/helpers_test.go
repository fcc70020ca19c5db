package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/custodia-labs/incentiva/internal/adapters/driven/dataset/jsonfile"
	"github.com/custodia-labs/incentiva/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/incentiva/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
	"github.com/custodia-labs/incentiva/internal/core/services"
)

const testDataset = `{
  "Alfa Petróleo": {
    "setor": "Energy",
    "controle_acionario": "Private",
    "fatos_extraidos": {
      "periodo_vesting": {"valor": 3},
      "diluicao_maxima_percentual": {"valor": 5.0},
      "malus_clawback_presente": {"presente": true}
    },
    "planos_identificados": {
      "Stock Options": {"documentos_fonte": ["https://example.com/alfa-1.pdf"]},
      "Restricted Shares": {"documentos_fonte": []}
    }
  },
  "Banco Beta": {
    "setor": "Banking",
    "controle_acionario": "State",
    "fatos_extraidos": {
      "periodo_vesting": {"valor": 4},
      "diluicao_maxima_percentual": {"valor": null},
      "malus_clawback_presente": {"presente": false}
    },
    "planos_identificados": {
      "Stock Options": {"documentos_fonte": ["https://example.com/beta.pdf"]}
    }
  }
}`

// setupTestServices wires real services over a temp dataset and resets
// the command state when the test ends.
func setupTestServices(t *testing.T) *services.SettingsService {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, []byte(testDataset), 0o600))

	settings := services.NewSettingsService(memory.NewConfigStore())
	dataset := services.NewDatasetService(jsonfile.NewReader(domain.DuplicateMerge), memory.NewTableCache(), path)

	applyServices(&Services{
		Settings:  settings,
		Dataset:   dataset,
		Analytics: services.NewAnalyticsService(language.BrazilianPortuguese),
		Exporter: func(dbPath string) (driving.ExportService, io.Closer, error) {
			store, err := sqlite.NewStore(dbPath)
			if err != nil {
				return nil, nil, err
			}
			return services.NewExportService(dataset, store), store, nil
		},
		TopN: domain.DefaultTopN,
	})

	t.Cleanup(func() {
		settingsService = nil
		datasetService = nil
		analyticsService = nil
		openExporter = nil
		topN = domain.DefaultTopN
	})
	return settings
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps flag values in package variables between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
