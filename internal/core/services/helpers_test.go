package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// testDataset returns a small dataset covering every degraded field.
func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Companies: []domain.Company{
			{
				Name:        "Acme",
				Sector:      domain.String("Energy"),
				ControlType: domain.String("Private"),
				Facts: domain.Facts{
					VestingYears:    domain.Float(3),
					MaxDilutionPct:  domain.Float(5),
					ClawbackPresent: true,
				},
				Plans: []domain.Plan{
					{Type: "Stock Options", Documents: []string{"u1", "u2"}},
					{Type: "Restricted Shares", Documents: []string{}},
				},
			},
			{
				Name: "Beta",
				Plans: []domain.Plan{
					{Type: "Phantom"},
				},
			},
			{
				Name:        "Gamma",
				Sector:      domain.String("Banking"),
				ControlType: domain.String("State"),
				Facts: domain.Facts{
					VestingYears:   domain.Float(4),
					MaxDilutionPct: domain.Float(2),
				},
				Plans: []domain.Plan{
					{Type: "Stock Options", Documents: []string{"g1"}},
				},
			},
			{
				Name:        "Empty",
				Sector:      domain.String("Retail"),
				ControlType: domain.String("Private"),
			},
		},
	}
}

// mockReader serves a fixed dataset and counts calls.
type mockReader struct {
	mu      sync.Mutex
	dataset *domain.Dataset
	stamp   domain.SourceStamp
	statErr error
	readErr error
	reads   int
	stats   int
}

func newMockReader(path string, ds *domain.Dataset) *mockReader {
	return &mockReader{
		dataset: ds,
		stamp:   domain.SourceStamp{Path: path, ModTime: time.Unix(1700000000, 0), Size: 100},
	}
}

func (m *mockReader) Stat(_ string) (domain.SourceStamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats++
	if m.statErr != nil {
		return domain.SourceStamp{}, m.statErr
	}
	return m.stamp, nil
}

func (m *mockReader) Read(_ context.Context, _ string) (*domain.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return nil, m.readErr
	}
	return m.dataset, nil
}

// touch simulates the source file changing on disk.
func (m *mockReader) touch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamp.ModTime = m.stamp.ModTime.Add(time.Second)
}

func (m *mockReader) readCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}
