package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for incentiva resources.
	uriScheme = "incentiva://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the filter values.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "options",
		Name:        "options",
		Description: "Sectors, plan types and control types observed in the dataset",
		MIMEType:    "application/json",
	}, s.handleOptionsResource)

	// Static resource for the company list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "companies",
		Name:        "companies",
		Description: "All company names in the dataset",
		MIMEType:    "application/json",
	}, s.handleCompaniesResource)

	// Template for company dossiers.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "companies/{name}",
		Name:        "company-dossier",
		Description: "Plans and source documents of one company",
		MIMEType:    "application/json",
	}, s.handleCompanyResource)
}

// handleOptionsResource returns the distinct filter values.
func (s *Server) handleOptionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, s.ports.Analytics.Options(rows))
}

// handleCompaniesResource returns the collated company names.
func (s *Server) handleCompaniesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, s.ports.Analytics.Companies(rows))
}

// handleCompanyResource returns one company's dossier.
func (s *Server) handleCompanyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract name from URI: incentiva://companies/{name}
	name := extractCompanyName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	rows, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	dossier, err := s.ports.Analytics.Dossier(rows, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("building dossier: %w", err)
	}
	return jsonResource(req.Params.URI, dossier)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractCompanyName extracts the company name from a URI like
// incentiva://companies/{name}. The name may be percent-encoded.
func extractCompanyName(uri string) string {
	const prefix = uriScheme + "companies/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
