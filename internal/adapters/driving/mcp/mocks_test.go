package mcp

import (
	"context"

	"golang.org/x/text/language"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/services"
)

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	rows []domain.PlanRow
	err  error
}

func (m *mockDatasetService) Load(_ context.Context) ([]domain.PlanRow, error) {
	return m.rows, m.err
}

func (m *mockDatasetService) Invalidate() {}

func (m *mockDatasetService) Path() string {
	return "/data/plans.json"
}

func (m *mockDatasetService) Watch(_ context.Context) (<-chan string, error) {
	return nil, nil
}

func ptr(f float64) *float64 { return &f }

func testRows() []domain.PlanRow {
	return []domain.PlanRow{
		{Company: "Alfa Petróleo", Sector: "Energy", ControlType: "Private", PlanType: "Stock Options",
			VestingYears: ptr(3), MaxDilutionPct: ptr(5), Clawback: true, DocumentCount: 1,
			Documents: []string{"https://example.com/alfa.pdf"}},
		{Company: "Alfa Petróleo", Sector: "Energy", ControlType: "Private", PlanType: "Restricted Shares",
			VestingYears: ptr(3), MaxDilutionPct: ptr(5), Clawback: true},
		{Company: "Banco Beta", Sector: "Banking", ControlType: "State", PlanType: "Stock Options",
			VestingYears: ptr(4)},
	}
}

// newTestServer returns a server over testRows and the real analytics service.
func newTestServer(dataset *mockDatasetService) *Server {
	if dataset == nil {
		dataset = &mockDatasetService{rows: testRows()}
	}
	server, err := NewServer(&Ports{
		Dataset:   dataset,
		Analytics: services.NewAnalyticsService(language.BrazilianPortuguese),
	})
	if err != nil {
		panic(err)
	}
	return server
}
