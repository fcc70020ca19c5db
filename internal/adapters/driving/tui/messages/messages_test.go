package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewOverview, "overview"},
		{ViewBenchmark, "benchmark"},
		{ViewGovernance, "governance"},
		{ViewExplorer, "explorer"},
		{ViewFilters, "filters"},
		{ViewSettings, "settings"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewTypes_AreDistinct(t *testing.T) {
	views := []ViewType{
		ViewMenu, ViewOverview, ViewBenchmark, ViewGovernance,
		ViewExplorer, ViewFilters, ViewSettings, ViewHelp,
	}

	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view type %d", v)
		seen[v] = true
	}
}

func TestDataLoaded(t *testing.T) {
	t.Run("with rows", func(t *testing.T) {
		msg := DataLoaded{Rows: []domain.PlanRow{{Company: "Acme"}}}
		assert.Len(t, msg.Rows, 1)
		assert.NoError(t, msg.Err)
	})

	t.Run("with error", func(t *testing.T) {
		msg := DataLoaded{Err: domain.ErrIO}
		assert.Nil(t, msg.Rows)
		assert.True(t, errors.Is(msg.Err, domain.ErrIO))
	})
}

func TestSelectionChanged(t *testing.T) {
	sel := domain.Selection{}.With(domain.DimensionSector, domain.NewValueSet("Energy"))
	msg := SelectionChanged{Selection: sel}

	assert.True(t, msg.Selection.Sectors.Contains("Energy"))
	assert.False(t, msg.Selection.Sectors.Contains("Banking"))
	assert.True(t, msg.Selection.PlanTypes.All())
}
