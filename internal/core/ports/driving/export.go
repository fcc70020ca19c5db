package driving

import (
	"context"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// ExportService persists filtered tables as snapshots.
type ExportService interface {
	// Export filters the current table and stores the result.
	Export(ctx context.Context, name string, sel domain.Selection) (*domain.Snapshot, error)

	// List returns stored snapshots, newest first.
	List(ctx context.Context) ([]domain.Snapshot, error)

	// Rows returns the rows of a stored snapshot.
	Rows(ctx context.Context, id string) ([]domain.PlanRow, error)

	// Delete removes a stored snapshot.
	Delete(ctx context.Context, id string) error
}
