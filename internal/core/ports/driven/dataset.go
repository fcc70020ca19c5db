package driven

import (
	"context"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// DatasetReader reads a dataset source.
type DatasetReader interface {
	// Stat returns the current stamp of the source without reading it.
	// Errors wrap domain.ErrIO.
	Stat(path string) (domain.SourceStamp, error)

	// Read decodes the source into a dataset.
	// Errors wrap domain.ErrIO when the source cannot be read and
	// domain.ErrParse when its root is not a mapping of companies.
	Read(ctx context.Context, path string) (*domain.Dataset, error)
}

// TableCache holds the flattened table of one source state.
// Implementations must be safe for concurrent use.
type TableCache interface {
	// Get returns the cached rows when stamp matches the stored stamp.
	Get(stamp domain.SourceStamp) ([]domain.PlanRow, bool)

	// Put replaces the cached entry.
	Put(stamp domain.SourceStamp, rows []domain.PlanRow)

	// Invalidate drops the cached entry for path. An empty path drops all.
	Invalidate(path string)
}

// ChangeNotifier reports changes to a dataset source.
type ChangeNotifier interface {
	// Watch starts watching path. The returned channel receives the path
	// once per settled burst of writes and is closed when ctx is done.
	Watch(ctx context.Context, path string) (<-chan string, error)
}
