package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

func TestFilterInput_Selection(t *testing.T) {
	t.Run("omitted lists leave dimensions unrestricted", func(t *testing.T) {
		sel := (&FilterInput{}).Selection()
		assert.True(t, sel.IsEmpty())
	})

	t.Run("empty list matches nothing", func(t *testing.T) {
		sel := (&FilterInput{Sectors: []string{}}).Selection()
		require.NotNil(t, sel.Sectors)
		assert.Empty(t, sel.Sectors)
		assert.True(t, sel.PlanTypes.All())
	})

	t.Run("values are kept", func(t *testing.T) {
		sel := (&FilterInput{ControlTypes: []string{"State"}}).Selection()
		assert.True(t, sel.ControlTypes.Contains("State"))
		assert.False(t, sel.ControlTypes.Contains("Private"))
	})
}

func TestServer_handleSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("summarises the whole table", func(t *testing.T) {
		server := newTestServer(nil)

		_, output, err := server.handleSummary(ctx, nil, SummaryInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Summary.Companies)
		assert.Equal(t, 3, output.Summary.Plans)
		assert.Equal(t, 2, output.Summary.ClawbackCount)
		require.NotEmpty(t, output.TopSectors)
		assert.Equal(t, "Energy", output.TopSectors[0].Label)
		assert.Equal(t, 2, output.TopSectors[0].Count)
	})

	t.Run("applies filters and top", func(t *testing.T) {
		server := newTestServer(nil)

		input := SummaryInput{Filters: FilterInput{Sectors: []string{"Banking"}}, Top: 1}
		_, output, err := server.handleSummary(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 1, output.Summary.Plans)
		assert.False(t, output.Summary.MeanDilution.Valid)
		assert.Len(t, output.TopSectors, 1)
		assert.InDelta(t, 0, output.Summary.ClawbackPct, 1e-9)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server := newTestServer(&mockDatasetService{err: domain.ErrIO})

		_, _, err := server.handleSummary(ctx, nil, SummaryInput{})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrIO)
		assert.Contains(t, err.Error(), "loading dataset")
	})
}

func TestServer_handleRows(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows in dataset order", func(t *testing.T) {
		server := newTestServer(nil)

		_, output, err := server.handleRows(ctx, nil, RowsInput{})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Total)
		require.Len(t, output.Rows, 3)
		assert.Equal(t, "Stock Options", output.Rows[0].PlanType)
		assert.Equal(t, "Restricted Shares", output.Rows[1].PlanType)
	})

	t.Run("limit truncates but total counts all", func(t *testing.T) {
		server := newTestServer(nil)

		_, output, err := server.handleRows(ctx, nil, RowsInput{Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Total)
		assert.Len(t, output.Rows, 1)
	})

	t.Run("empty selection returns empty list", func(t *testing.T) {
		server := newTestServer(nil)

		input := RowsInput{Filters: FilterInput{PlanTypes: []string{}}}
		_, output, err := server.handleRows(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 0, output.Total)
		assert.NotNil(t, output.Rows)
		assert.Empty(t, output.Rows)
	})
}

func TestServer_handleFindCompanies(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(nil)

	_, output, err := server.handleFindCompanies(ctx, nil, FindInput{Query: "PETROLEO"})

	require.NoError(t, err)
	assert.Equal(t, []string{"Alfa Petróleo"}, output.Companies)
	assert.Equal(t, 1, output.Count)
}

func TestServer_handleCompany(t *testing.T) {
	ctx := context.Background()

	t.Run("returns dossier", func(t *testing.T) {
		server := newTestServer(nil)

		_, dossier, err := server.handleCompany(ctx, nil, CompanyInput{Name: "Alfa Petróleo"})

		require.NoError(t, err)
		assert.Equal(t, "Energy", dossier.Sector)
		assert.Len(t, dossier.Plans, 2)
		assert.Equal(t, 1, dossier.DocumentCount())
	})

	t.Run("unknown company is not found", func(t *testing.T) {
		server := newTestServer(nil)

		_, _, err := server.handleCompany(ctx, nil, CompanyInput{Name: "Gama"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Contains(t, err.Error(), `"Gama"`)
	})

	t.Run("returns error on load failure", func(t *testing.T) {
		server := newTestServer(&mockDatasetService{err: errors.New("disk gone")})

		_, _, err := server.handleCompany(ctx, nil, CompanyInput{Name: "Alfa Petróleo"})

		assert.ErrorContains(t, err, "disk gone")
	})
}

func TestServer_handleOptions(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(nil)

	_, opts, err := server.handleOptions(ctx, nil, OptionsInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"Banking", "Energy"}, opts.Sectors)
	assert.Equal(t, []string{"Private", "State"}, opts.ControlTypes)
}
