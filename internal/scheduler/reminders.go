package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/uktrade/export-wins-mi/internal/events"
	"github.com/uktrade/export-wins-mi/internal/modules/wins"
)

// ReminderJob chases customers who have not responded to a completed win.
// Each run records one customer notification per outstanding win; the
// confirm-time estimator only ever counts the earliest, so repeat
// reminders never skew the average.
type ReminderJob struct {
	winsRepo *wins.Repository
	events   *events.Manager
	log      zerolog.Logger
}

// NewReminderJob creates a new reminder job
func NewReminderJob(winsRepo *wins.Repository, eventManager *events.Manager, log zerolog.Logger) *ReminderJob {
	return &ReminderJob{
		winsRepo: winsRepo,
		events:   eventManager,
		log:      log.With().Str("job", "reminders").Logger(),
	}
}

// Name returns the job name
func (j *ReminderJob) Name() string {
	return "customer-reminders"
}

// Run sends a reminder for every complete win still awaiting a customer
// response
func (j *ReminderJob) Run() error {
	outstanding, err := j.winsRepo.UnconfirmedComplete()
	if err != nil {
		return fmt.Errorf("failed to list unconfirmed wins: %w", err)
	}
	if len(outstanding) == 0 {
		j.log.Debug().Msg("No outstanding wins to remind")
		return nil
	}

	now := time.Now().UTC()
	sent := 0
	for _, win := range outstanding {
		if err := j.winsRepo.AddNotification(win.ID, wins.NotificationTypeCustomer, now); err != nil {
			j.log.Error().Err(err).Str("win_id", win.ID).Msg("Failed to record reminder")
			continue
		}
		sent++
	}

	j.log.Info().Int("sent", sent).Int("outstanding", len(outstanding)).Msg("Reminders sent")
	j.events.Emit(events.RemindersSent, "scheduler", map[string]interface{}{
		"sent":        sent,
		"outstanding": len(outstanding),
	})
	return nil
}
