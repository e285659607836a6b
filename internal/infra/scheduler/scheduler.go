package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"organist_rotation/internal/app"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ReminderScheduler runs the daily reminder evaluation while the process
// stays up.
type ReminderScheduler struct {
	cronEngine *cron.Cron
	reminders  *app.ReminderService
	out        io.Writer
	logger     *logrus.Entry
	cronSpec   string
	runTimeout time.Duration
}

func NewReminderScheduler(
	reminders *app.ReminderService,
	out io.Writer,
	logger *logrus.Entry,
	loc *time.Location, // civil timezone; the cron spec is read in this location
	cronSpec string, // e.g., "0 8 * * *" (8:00 AM daily)
) *ReminderScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &ReminderScheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		reminders:  reminders,
		out:        out,
		logger:     logger,
		cronSpec:   cronSpec,
		runTimeout: 1 * time.Minute,
	}
}

func (s *ReminderScheduler) Start() error {
	s.logger.Info("Starting reminder scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.logger.Info("Cron job triggered for daily reminders.")
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()
		if _, err := s.RunOnce(ctx); err != nil {
			s.logger.WithError(err).Error("Error during reminder evaluation")
		}
	})
	if err != nil {
		return fmt.Errorf("could not add reminder cron job %q: %w", s.cronSpec, err)
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpec).Info("Reminder scheduler started.")
	return nil
}

// RunOnce evaluates today's reminders immediately and returns how many were due.
func (s *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {
	runID := uuid.New().String()
	logCtx := s.logger.WithField("run_id", runID)
	logCtx.Debug("Evaluating reminders")

	notices, err := s.reminders.RemindToday(ctx, s.out)
	if err != nil {
		return 0, fmt.Errorf("run %s: %w", runID, err)
	}
	logCtx.WithField("notices", len(notices)).Info("Reminder run completed")
	return len(notices), nil
}

// Next reports when the reminder job fires next. Zero before Start.
func (s *ReminderScheduler) Next() time.Time {
	entries := s.cronEngine.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *ReminderScheduler) Stop() {
	s.logger.Info("Stopping reminder scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Reminder scheduler gracefully stopped.")
}
