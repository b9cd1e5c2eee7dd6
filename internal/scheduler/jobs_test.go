package scheduler

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uktrade/export-wins-mi/internal/database"
	"github.com/uktrade/export-wins-mi/internal/events"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

func setupTestDB(t *testing.T) *database.DB {
	db, err := database.New(filepath.Join(t.TempDir(), "mi.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReminderJobRecordsNotifications(t *testing.T) {
	db := setupTestDB(t)
	repo := wins.NewRepository(db.Conn(), zerolog.Nop())

	// Two complete wins without responses, one already confirmed
	for i := 1; i <= 2; i++ {
		require.NoError(t, repo.Create(&wins.Win{
			ID:          fmt.Sprintf("win-%d", i),
			Sector:      10,
			Country:     "US",
			Date:        time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC),
			ExportValue: 100000,
			Complete:    true,
		}))
	}
	require.NoError(t, repo.Create(&wins.Win{
		ID:          "win-3",
		Sector:      10,
		Country:     "US",
		Date:        time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC),
		ExportValue: 100000,
		Complete:    true,
	}))
	agree := true
	require.NoError(t, repo.RecordCustomerResponse("win-3", &agree, time.Now()))

	job := NewReminderJob(repo, events.NewManager(zerolog.Nop()), zerolog.Nop())
	require.NoError(t, job.Run())

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notifications`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestReminderJobNoOutstanding(t *testing.T) {
	db := setupTestDB(t)
	repo := wins.NewRepository(db.Conn(), zerolog.Nop())

	job := NewReminderJob(repo, events.NewManager(zerolog.Nop()), zerolog.Nop())
	require.NoError(t, job.Run())

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM notifications`).Scan(&count))
	assert.Equal(t, 0, count)
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) RefreshOverviews() error {
	f.calls++
	return f.err
}

func TestCacheRefreshJob(t *testing.T) {
	manager := events.NewManager(zerolog.Nop())
	ch, cancel := manager.Subscribe()
	defer cancel()

	refresher := &fakeRefresher{}
	job := NewCacheRefreshJob(refresher, manager, zerolog.Nop())

	require.NoError(t, job.Run())
	assert.Equal(t, 1, refresher.calls)

	event := <-ch
	assert.Equal(t, events.CacheRefreshed, event.Type)
}

func TestCacheRefreshJobPropagatesError(t *testing.T) {
	refresher := &fakeRefresher{err: fmt.Errorf("boom")}
	job := NewCacheRefreshJob(refresher, events.NewManager(zerolog.Nop()), zerolog.Nop())

	assert.Error(t, job.Run())
}

func TestBackupJobVerifySnapshot(t *testing.T) {
	db := setupTestDB(t)
	job := NewBackupJob(db, "test-bucket", "eu-west-2", events.NewManager(zerolog.Nop()), zerolog.Nop())

	snapshot := filepath.Join(t.TempDir(), "snapshot.db")
	_, err := db.Exec(`VACUUM INTO ?`, snapshot)
	require.NoError(t, err)

	assert.NoError(t, job.verifySnapshot(snapshot))
}

func TestBackupJobVerifyRejectsMissingSchema(t *testing.T) {
	db := setupTestDB(t)
	job := NewBackupJob(db, "test-bucket", "eu-west-2", events.NewManager(zerolog.Nop()), zerolog.Nop())

	// A fresh unmigrated database has no wins table
	empty, err := database.New(filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	_, err = empty.Exec(`CREATE TABLE placeholder (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, empty.Close())

	assert.Error(t, job.verifySnapshot(empty.Path()))
}
