package mi

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCacheRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	cache := NewReportCache(db.Conn(), 30*time.Minute, zerolog.Nop())

	entries := []OverviewEntry{{ID: 1, Name: "Technology"}}
	require.NoError(t, cache.Put(CacheKeySectorTeamsOverview, entries))

	var out []OverviewEntry
	hit, err := cache.Get(CacheKeySectorTeamsOverview, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, out, 1)
	assert.Equal(t, "Technology", out[0].Name)
}

func TestReportCacheMiss(t *testing.T) {
	db := setupTestDB(t)
	cache := NewReportCache(db.Conn(), 30*time.Minute, zerolog.Nop())

	var out []OverviewEntry
	hit, err := cache.Get("never-stored", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestReportCacheExpiry(t *testing.T) {
	db := setupTestDB(t)
	cache := NewReportCache(db.Conn(), time.Nanosecond, zerolog.Nop())

	require.NoError(t, cache.Put(CacheKeySectorTeamsOverview, []OverviewEntry{{ID: 1}}))
	time.Sleep(time.Millisecond)

	var out []OverviewEntry
	hit, err := cache.Get(CacheKeySectorTeamsOverview, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestReportCachePutReplaces(t *testing.T) {
	db := setupTestDB(t)
	cache := NewReportCache(db.Conn(), 30*time.Minute, zerolog.Nop())

	require.NoError(t, cache.Put(CacheKeySectorTeamsOverview, []OverviewEntry{{ID: 1}}))
	require.NoError(t, cache.Put(CacheKeySectorTeamsOverview, []OverviewEntry{{ID: 2}, {ID: 3}}))

	var out []OverviewEntry
	hit, err := cache.Get(CacheKeySectorTeamsOverview, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Len(t, out, 2)
}

func TestReportCacheInvalidate(t *testing.T) {
	db := setupTestDB(t)
	cache := NewReportCache(db.Conn(), 30*time.Minute, zerolog.Nop())

	require.NoError(t, cache.Put(CacheKeyRegionsOverview, []OverviewEntry{{ID: 1}}))
	require.NoError(t, cache.Invalidate(CacheKeyRegionsOverview))

	var out []OverviewEntry
	hit, err := cache.Get(CacheKeyRegionsOverview, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}
