package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

func testStamp(path string, size int64) domain.SourceStamp {
	return domain.SourceStamp{
		Path:    path,
		ModTime: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Size:    size,
	}
}

func TestTableCache_MissThenHit(t *testing.T) {
	cache := NewTableCache()
	stamp := testStamp("/data/plans.json", 100)
	rows := []domain.PlanRow{{Company: "Acme", PlanType: "Options"}}

	_, ok := cache.Get(stamp)
	assert.False(t, ok)

	cache.Put(stamp, rows)
	got, ok := cache.Get(stamp)

	require.True(t, ok)
	assert.Equal(t, rows, got)

	hits, misses := cache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestTableCache_ChangedStampMisses(t *testing.T) {
	cache := NewTableCache()
	cache.Put(testStamp("/data/plans.json", 100), []domain.PlanRow{{Company: "Acme"}})

	_, ok := cache.Get(testStamp("/data/plans.json", 101))
	assert.False(t, ok)

	touched := testStamp("/data/plans.json", 100)
	touched.ModTime = touched.ModTime.Add(time.Second)
	_, ok = cache.Get(touched)
	assert.False(t, ok)
}

func TestTableCache_Invalidate(t *testing.T) {
	cache := NewTableCache()
	a := testStamp("/data/a.json", 1)
	b := testStamp("/data/b.json", 1)
	cache.Put(a, nil)
	cache.Put(b, nil)
	require.Equal(t, 2, cache.Len())

	cache.Invalidate("/data/a.json")
	assert.Equal(t, 1, cache.Len())
	_, ok := cache.Get(a)
	assert.False(t, ok)

	cache.Invalidate("")
	assert.Equal(t, 0, cache.Len())
}
