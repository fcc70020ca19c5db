package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/custodia-labs/incentiva/internal/core/domain"
	"github.com/custodia-labs/incentiva/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.DatasetReader = (*Reader)(nil)

// Reader reads datasets from JSON files on disk.
type Reader struct {
	policy domain.DuplicatePolicy
}

// NewReader creates a reader that resolves duplicate names with policy.
// An unrecognised policy falls back to merge.
func NewReader(policy domain.DuplicatePolicy) *Reader {
	if !policy.IsValid() {
		policy = domain.DuplicateMerge
	}
	return &Reader{policy: policy}
}

// Policy returns the duplicate policy in use.
func (r *Reader) Policy() domain.DuplicatePolicy {
	return r.policy
}

// Stat returns the current stamp of the file at path.
func (r *Reader) Stat(path string) (domain.SourceStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.SourceStamp{}, errors.Join(domain.ErrIO, err)
	}
	if info.IsDir() {
		return domain.SourceStamp{}, fmt.Errorf("%w: %s is a directory", domain.ErrIO, path)
	}
	return domain.SourceStamp{
		Path:    path,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

// Read opens and decodes the file at path.
func (r *Reader) Read(ctx context.Context, path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(domain.ErrIO, err)
	}
	defer f.Close()

	ds, err := Decode(ctx, f, r.policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}
