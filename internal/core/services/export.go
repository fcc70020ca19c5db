package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
	"github.com/custodia-labs/incentiva/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService stores filtered tables as snapshots.
type ExportService struct {
	dataset driving.DatasetService
	store   driven.SnapshotStore
	now     func() time.Time
}

// NewExportService creates a new export service.
func NewExportService(dataset driving.DatasetService, store driven.SnapshotStore) *ExportService {
	return &ExportService{
		dataset: dataset,
		store:   store,
		now:     time.Now,
	}
}

// Export filters the current table and stores the result.
func (s *ExportService) Export(ctx context.Context, name string, sel domain.Selection) (*domain.Snapshot, error) {
	if s.store == nil {
		return nil, errors.New("export: snapshot store not configured")
	}

	rows, err := s.dataset.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	filtered := domain.Filter(rows, sel)

	name = strings.TrimSpace(name)
	if name == "" {
		name = "snapshot " + s.now().UTC().Format(time.RFC3339)
	}

	snap := domain.Snapshot{
		Name:      name,
		Source:    s.dataset.Path(),
		Filters:   domain.SelectionFilters(sel),
		RowCount:  len(filtered),
		CreatedAt: s.now().UTC(),
	}

	saved, err := s.store.Save(ctx, snap, filtered)
	if err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	logger.Info("Exported %d rows to snapshot %s", saved.RowCount, saved.ID)
	return saved, nil
}

// List returns stored snapshots, newest first.
func (s *ExportService) List(ctx context.Context) ([]domain.Snapshot, error) {
	if s.store == nil {
		return nil, errors.New("export: snapshot store not configured")
	}
	return s.store.List(ctx)
}

// Rows returns the rows of a stored snapshot.
func (s *ExportService) Rows(ctx context.Context, id string) ([]domain.PlanRow, error) {
	if s.store == nil {
		return nil, errors.New("export: snapshot store not configured")
	}
	return s.store.Rows(ctx, id)
}

// Delete removes a stored snapshot.
func (s *ExportService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return errors.New("export: snapshot store not configured")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Deleted snapshot %s", id)
	return nil
}
