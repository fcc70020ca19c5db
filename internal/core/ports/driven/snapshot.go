package driven

import (
	"context"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// SnapshotStore persists filtered tables for later analysis.
type SnapshotStore interface {
	// Save writes rows as a new snapshot and returns it with its ID set.
	Save(ctx context.Context, snap domain.Snapshot, rows []domain.PlanRow) (*domain.Snapshot, error)

	// List returns stored snapshots, newest first.
	List(ctx context.Context) ([]domain.Snapshot, error)

	// Rows returns the rows of a snapshot in their saved order.
	// Returns domain.ErrNotFound if the snapshot does not exist.
	Rows(ctx context.Context, id string) ([]domain.PlanRow, error)

	// Delete removes a snapshot and its rows.
	// Returns domain.ErrNotFound if the snapshot does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases the underlying storage.
	Close() error
}
