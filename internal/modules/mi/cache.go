package mi

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// Cache keys for the overview reports, the only views expensive enough to
// snapshot (they scan every team/region in one request).
const (
	CacheKeySectorTeamsOverview = "sector_teams_overview"
	CacheKeyRegionsOverview     = "os_regions_overview"
)

// ReportCache stores msgpack-encoded report snapshots in sqlite. Entries
// older than the TTL are treated as misses; the scheduler's refresh job
// rebuilds them so dashboards rarely pay the full scan.
type ReportCache struct {
	db  *sql.DB
	ttl time.Duration
	log zerolog.Logger
}

// NewReportCache creates a new report cache
func NewReportCache(db *sql.DB, ttl time.Duration, log zerolog.Logger) *ReportCache {
	return &ReportCache{
		db:  db,
		ttl: ttl,
		log: log.With().Str("service", "report_cache").Logger(),
	}
}

// Get decodes a fresh snapshot into out. Returns false on miss or expiry.
func (c *ReportCache) Get(key string, out interface{}) (bool, error) {
	var payload []byte
	var generatedStr string
	err := c.db.QueryRow(`SELECT payload, generated_at FROM report_cache WHERE key = ?`, key).
		Scan(&payload, &generatedStr)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read report cache: %w", err)
	}

	generatedAt, err := time.Parse(time.RFC3339, generatedStr)
	if err != nil || time.Since(generatedAt) > c.ttl {
		return false, nil
	}

	if err := msgpack.Unmarshal(payload, out); err != nil {
		// A stale encoding after a deploy is a miss, not a failure
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return false, nil
	}
	return true, nil
}

// Put stores a snapshot, replacing any previous one for the key
func (c *ReportCache) Put(key string, value interface{}) error {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode report snapshot: %w", err)
	}

	_, err = c.db.Exec(`
		INSERT INTO report_cache (key, payload, generated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, generated_at = excluded.generated_at
	`, key, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store report snapshot: %w", err)
	}

	c.log.Debug().Str("key", key).Int("bytes", len(payload)).Msg("Report snapshot stored")
	return nil
}

// Invalidate drops a snapshot
func (c *ReportCache) Invalidate(key string) error {
	if _, err := c.db.Exec(`DELETE FROM report_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}
