package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/uktrade/export-wins-mi/internal/events"
)

// OverviewRefresher rebuilds the cached overview reports
type OverviewRefresher interface {
	RefreshOverviews() error
}

// CacheRefreshJob keeps the overview report snapshots warm so dashboard
// requests rarely pay the full per-team scan
type CacheRefreshJob struct {
	refresher OverviewRefresher
	events    *events.Manager
	log       zerolog.Logger
}

// NewCacheRefreshJob creates a new cache refresh job
func NewCacheRefreshJob(refresher OverviewRefresher, eventManager *events.Manager, log zerolog.Logger) *CacheRefreshJob {
	return &CacheRefreshJob{
		refresher: refresher,
		events:    eventManager,
		log:       log.With().Str("job", "cache_refresh").Logger(),
	}
}

// Name returns the job name
func (j *CacheRefreshJob) Name() string {
	return "report-cache-refresh"
}

// Run rebuilds both overview snapshots
func (j *CacheRefreshJob) Run() error {
	if err := j.refresher.RefreshOverviews(); err != nil {
		j.events.EmitError("scheduler", err, map[string]interface{}{"job": j.Name()})
		return fmt.Errorf("failed to refresh overview cache: %w", err)
	}

	j.events.Emit(events.CacheRefreshed, "scheduler", nil)
	return nil
}
