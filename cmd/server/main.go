package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/uktrade/export-wins-mi/internal/config"
	"github.com/uktrade/export-wins-mi/internal/database"
	"github.com/uktrade/export-wins-mi/internal/events"
	"github.com/uktrade/export-wins-mi/internal/modules/hierarchy"
	"github.com/uktrade/export-wins-mi/internal/modules/mi"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
	"github.com/uktrade/export-wins-mi/internal/scheduler"
	"github.com/uktrade/export-wins-mi/internal/server"
	"github.com/uktrade/export-wins-mi/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Export Wins MI")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Events feed the live dashboard websocket
	eventManager := events.NewManager(log)

	// Repositories and report handler
	winsRepo := wins.NewRepository(db.Conn(), log)
	hierRepo := hierarchy.NewRepository(db.Conn(), log)
	reportCache := mi.NewReportCache(db.Conn(), time.Duration(cfg.CacheTTLMinutes)*time.Minute, log)
	miHandler := mi.NewHandler(winsRepo, hierRepo, reportCache, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Register background jobs
	if err := registerJobs(sched, cfg, db, winsRepo, miHandler, eventManager, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:    cfg.Port,
		Log:     log,
		DB:      db,
		Config:  cfg,
		DevMode: cfg.DevMode,
		MI:      miHandler,
		Events:  eventManager,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	cfg *config.Config,
	db *database.DB,
	winsRepo *wins.Repository,
	miHandler *mi.Handler,
	eventManager *events.Manager,
	log zerolog.Logger,
) error {
	if err := sched.AddJob(cfg.ReminderSchedule, scheduler.NewReminderJob(winsRepo, eventManager, log)); err != nil {
		return err
	}

	cacheJob := scheduler.NewCacheRefreshJob(miHandler, eventManager, log)
	if err := sched.AddJob(cfg.CacheRefresh, cacheJob); err != nil {
		return err
	}
	// Warm the cache at startup rather than waiting for the first tick
	go func() {
		if err := sched.RunNow(cacheJob); err != nil {
			log.Warn().Err(err).Msg("Initial cache warm failed")
		}
	}()

	if cfg.BackupBucket == "" {
		log.Info().Msg("BACKUP_S3_BUCKET not set, backups disabled")
		return nil
	}
	return sched.AddJob(cfg.BackupSchedule,
		scheduler.NewBackupJob(db, cfg.BackupBucket, cfg.BackupRegion, eventManager, log))
}
