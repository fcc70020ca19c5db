package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for incentiva.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}
	if ports.TopN <= 0 {
		ports.TopN = domain.DefaultTopN
	}

	impl := &mcp.Implementation{
		Name:    "incentiva",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// load returns the full table.
func (s *Server) load(ctx context.Context) ([]domain.PlanRow, error) {
	rows, err := s.ports.Dataset.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return rows, nil
}
