package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/incentiva/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a read-only Model Context Protocol server over stdio.

The server exposes the plan table to MCP-compatible assistants:

Tools:
  summary         Headline KPIs and distributions of the filtered table
  rows            Flattened (company, plan) rows
  find_companies  Search company names, ignoring case and accents
  company         One company's plans and documents
  options         Values accepted by the filters

Resources:
  incentiva://options
  incentiva://companies
  incentiva://companies/{name}

Client configuration:
  {
    "mcpServers": {
      "incentiva": {
        "command": "/path/to/incentiva",
        "args": ["--data", "/path/to/plans.json", "mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// newMCPServer builds the server from the configured services.
func newMCPServer() (*mcp.Server, error) {
	if datasetService == nil || analyticsService == nil {
		return nil, errors.New("mcp: services not configured")
	}
	return mcp.NewServer(&mcp.Ports{
		Dataset:   datasetService,
		Analytics: analyticsService,
		TopN:      topN,
	})
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := newMCPServer()
	if err != nil {
		return err
	}
	return server.Run(cmd.Context())
}
