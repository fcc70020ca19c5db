package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
	"github.com/custodia-labs/incentiva/internal/core/ports/driving"
	"github.com/custodia-labs/incentiva/internal/logger"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// DatasetService loads and caches the flattened plan table.
// The cache is keyed by the source stamp (path, modification time, size),
// so an unchanged file is read and flattened only once.
type DatasetService struct {
	reader   driven.DatasetReader
	cache    driven.TableCache
	notifier driven.ChangeNotifier
	path     string
}

// NewDatasetService creates a new dataset service for the file at path.
func NewDatasetService(reader driven.DatasetReader, cache driven.TableCache, path string) *DatasetService {
	return &DatasetService{
		reader: reader,
		cache:  cache,
		path:   path,
	}
}

// WithNotifier enables Watch using notifier.
func (s *DatasetService) WithNotifier(notifier driven.ChangeNotifier) *DatasetService {
	s.notifier = notifier
	return s
}

// Load returns the flattened table, reading the source only when its stamp
// differs from the cached one.
func (s *DatasetService) Load(ctx context.Context) ([]domain.PlanRow, error) {
	if s.path == "" {
		return nil, domain.ErrNoDataPath
	}
	if s.reader == nil {
		return nil, fmt.Errorf("load dataset: reader not configured")
	}

	logger.Section("Dataset Load")

	stamp, err := s.reader.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}

	if s.cache != nil {
		if rows, ok := s.cache.Get(stamp); ok {
			logger.Debug("Cache hit for %s (%d rows)", s.path, len(rows))
			return rows, nil
		}
	}

	logger.Debug("Cache miss for %s, reading source", s.path)

	ds, err := s.reader.Read(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	start := time.Now()
	rows := Flatten(ds)
	logger.Elapsed("flatten", start)
	logger.Info("Loaded %d companies, %d plans from %s", len(ds.Companies), len(rows), s.path)

	if s.cache != nil {
		s.cache.Put(stamp, rows)
	}

	return rows, nil
}

// Invalidate drops the cached table for this service's path.
func (s *DatasetService) Invalidate() {
	if s.cache == nil {
		return
	}
	logger.Debug("Invalidating cache for %s", s.path)
	s.cache.Invalidate(s.path)
}

// Path returns the dataset path.
func (s *DatasetService) Path() string {
	return s.path
}

// Watch reports changes to the source until ctx is done.
func (s *DatasetService) Watch(ctx context.Context) (<-chan string, error) {
	if s.notifier == nil || s.path == "" {
		return nil, nil
	}
	ch, err := s.notifier.Watch(ctx, s.path)
	if err != nil {
		return nil, fmt.Errorf("watch dataset: %w", err)
	}
	return ch, nil
}
