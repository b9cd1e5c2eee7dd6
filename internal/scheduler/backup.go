package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/uktrade/export-wins-mi/internal/database"
	"github.com/uktrade/export-wins-mi/internal/events"
)

// BackupJob snapshots the database and ships it to S3. The snapshot is
// taken with VACUUM INTO so readers and the WAL are never disturbed, then
// verified before upload.
type BackupJob struct {
	db     *database.DB
	bucket string
	region string
	events *events.Manager
	log    zerolog.Logger
}

// NewBackupJob creates a new backup job
func NewBackupJob(db *database.DB, bucket, region string, eventManager *events.Manager, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		db:     db,
		bucket: bucket,
		region: region,
		events: eventManager,
		log:    log.With().Str("job", "backup").Logger(),
	}
}

// Name returns the job name
func (j *BackupJob) Name() string {
	return "database-backup"
}

// Run snapshots, verifies and uploads the database
func (j *BackupJob) Run() error {
	startTime := time.Now()

	snapshotDir, err := os.MkdirTemp("", "exportwins-backup-*")
	if err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	defer os.RemoveAll(snapshotDir)

	timestamp := time.Now().UTC().Format("2006-01-02_15-04")
	snapshotPath := filepath.Join(snapshotDir, fmt.Sprintf("exportwins_%s.db", timestamp))

	if _, err := j.db.Exec(`VACUUM INTO ?`, snapshotPath); err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}
	if err := j.verifySnapshot(snapshotPath); err != nil {
		return fmt.Errorf("snapshot verification failed: %w", err)
	}

	key := fmt.Sprintf("backups/%s", filepath.Base(snapshotPath))
	if err := j.upload(snapshotPath, key); err != nil {
		j.events.EmitError("scheduler", err, map[string]interface{}{"job": j.Name()})
		return err
	}

	j.log.Info().
		Str("bucket", j.bucket).
		Str("key", key).
		Dur("duration_ms", time.Since(startTime)).
		Msg("Backup completed")
	j.events.Emit(events.BackupCompleted, "scheduler", map[string]interface{}{
		"bucket": j.bucket,
		"key":    key,
	})
	return nil
}

// verifySnapshot checks the copy is a readable SQLite file with our schema
func (j *BackupJob) verifySnapshot(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("snapshot is empty")
	}

	check, err := database.New(path)
	if err != nil {
		return err
	}
	defer check.Close()

	var count int
	err = check.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'wins'`).Scan(&count)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("snapshot is missing the wins table")
	}
	return nil
}

func (j *BackupJob) upload(path, key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(j.region))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer file.Close()

	uploader := manager.NewUploader(s3.NewFromConfig(cfg))
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(j.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return nil
}
