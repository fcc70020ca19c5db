package driving

import (
	"context"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// DatasetService loads the flattened plan table.
type DatasetService interface {
	// Load returns the flattened table. The table is read and flattened at
	// most once per source state; callers must treat it as read-only.
	Load(ctx context.Context) ([]domain.PlanRow, error)

	// Invalidate drops the cached table so the next Load re-reads the source.
	Invalidate()

	// Path returns the dataset path the service reads.
	Path() string

	// Watch reports changes to the source until ctx is done. It returns a
	// nil channel when change detection is not configured.
	Watch(ctx context.Context) (<-chan string, error)
}
