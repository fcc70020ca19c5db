package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNewReader_Policy(t *testing.T) {
	assert.Equal(t, domain.DuplicateReject, NewReader(domain.DuplicateReject).Policy())
	assert.Equal(t, domain.DuplicateMerge, NewReader("").Policy())
}

func TestReader_Read(t *testing.T) {
	path := writeFile(t, acmeJSON)

	ds, err := NewReader(domain.DuplicateMerge).Read(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, ds.Companies, 1)
	assert.Equal(t, 2, ds.PlanCount())
}

func TestReader_Read_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := NewReader(domain.DuplicateMerge).Read(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReader_Read_ParseErrorNamesPath(t *testing.T) {
	path := writeFile(t, `[]`)

	_, err := NewReader(domain.DuplicateMerge).Read(context.Background(), path)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), path)
}

func TestReader_Stat(t *testing.T) {
	path := writeFile(t, acmeJSON)
	reader := NewReader(domain.DuplicateMerge)

	stamp, err := reader.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, path, stamp.Path)
	assert.Equal(t, int64(len(acmeJSON)), stamp.Size)

	again, err := reader.Stat(path)
	require.NoError(t, err)
	assert.True(t, stamp.Equal(again))

	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0600))
	changed, err := reader.Stat(path)
	require.NoError(t, err)
	assert.False(t, stamp.Equal(changed))
}

func TestReader_Stat_Errors(t *testing.T) {
	reader := NewReader(domain.DuplicateMerge)

	_, err := reader.Stat(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, domain.ErrIO)

	_, err = reader.Stat(t.TempDir())
	assert.ErrorIs(t, err, domain.ErrIO)
}
