package app

import (
	"context"
	"fmt"
	"io"

	"organist_rotation/internal/domain/reminder"
	"organist_rotation/internal/domain/roster"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

// Today supplies the current civil date.
type Today interface {
	Today() civil.Date
}

// ReminderService evaluates the stored schedule against today's date and
// prints the simulated reminders. Nothing is sent anywhere.
type ReminderService struct {
	repo     roster.Repository
	clock    Today
	tzName   string
	leadDays int
	logger   *logrus.Entry
}

func NewReminderService(repo roster.Repository, clock Today, tzName string, leadDays int, logger *logrus.Entry) *ReminderService {
	return &ReminderService{
		repo:     repo,
		clock:    clock,
		tzName:   tzName,
		leadDays: leadDays,
		logger:   logger,
	}
}

func (s *ReminderService) LeadDays() int { return s.leadDays }

// WithLeadDays returns a copy of the service using a different lead time.
func (s *ReminderService) WithLeadDays(days int) *ReminderService {
	c := *s
	c.leadDays = days
	return &c
}

// RemindToday prints a notice for every entry exactly LeadDays away from
// today and returns them.
func (s *ReminderService) RemindToday(ctx context.Context, w io.Writer) ([]reminder.Notice, error) {
	today := s.clock.Today()
	logCtx := s.logger.WithFields(logrus.Fields{
		"today":     today.String(),
		"lead_days": s.leadDays,
	})

	schedule, err := s.repo.Load(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Failed to load schedule for reminders")
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	if len(schedule) == 0 {
		logCtx.Info("No schedule stored; nothing to evaluate")
		fmt.Fprintln(w, MsgNoSchedule)
		return []reminder.Notice{}, nil
	}

	fmt.Fprintf(w, "Data de hoje: %s (%s)\n", reminder.FormatDate(today), s.tzName)

	notices := reminder.EvaluateDue(schedule, today, s.leadDays)
	for _, n := range notices {
		fmt.Fprintln(w, n.Message)
		logCtx.WithFields(logrus.Fields{
			"assignee": n.Assignee,
			"date":     n.Date.String(),
			"slot":     n.Slot.Label(),
			"status":   n.Status,
		}).Info("Reminder due")
	}
	if len(notices) == 0 {
		fmt.Fprintf(w, "Hoje não há lembretes (nenhum culto em %d dias).\n", s.leadDays)
	}
	logCtx.WithField("notices", len(notices)).Info("Reminder evaluation finished")
	return notices, nil
}
