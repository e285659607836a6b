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

// MsgNoSchedule is printed whenever the store holds no schedule.
const MsgNoSchedule = "Nenhuma escala encontrada. Gere a escala primeiro."

type ScheduleService struct {
	generator *roster.Generator
	repo      roster.Repository
	logger    *logrus.Entry
}

func NewScheduleService(g *roster.Generator, repo roster.Repository, logger *logrus.Entry) *ScheduleService {
	return &ScheduleService{
		generator: g,
		repo:      repo,
		logger:    logger,
	}
}

// Generate builds a new schedule from start and replaces the stored one.
func (s *ScheduleService) Generate(ctx context.Context, start civil.Date, weeks int) (roster.Schedule, error) {
	schedule := s.generator.Generate(start, weeks)

	logCtx := s.logger.WithFields(logrus.Fields{
		"start":   start.String(),
		"weeks":   weeks,
		"entries": len(schedule),
	})
	if len(schedule) > 0 {
		logCtx = logCtx.WithField("first_date", schedule[0].Date.String())
	}

	if err := s.repo.Replace(ctx, schedule); err != nil {
		logCtx.WithError(err).Error("Failed to store generated schedule")
		return nil, fmt.Errorf("failed to store schedule: %w", err)
	}
	logCtx.Info("Schedule generated and stored")
	return schedule, nil
}

// List returns the stored schedule. A store that was never written yields an
// empty schedule and no error.
func (s *ScheduleService) List(ctx context.Context) (roster.Schedule, error) {
	schedule, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load schedule")
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	s.logger.WithField("entries", len(schedule)).Debug("Schedule loaded")
	return schedule, nil
}

// Print writes the schedule one entry per line.
func (s *ScheduleService) Print(w io.Writer, schedule roster.Schedule) {
	if len(schedule) == 0 {
		fmt.Fprintln(w, MsgNoSchedule)
		return
	}
	fmt.Fprintln(w, "Escala de organistas:")
	for _, e := range schedule {
		fmt.Fprintf(w, "%s (%s) → %s\n", reminder.FormatDate(e.Date), e.Slot.Label(), e.Assignee)
	}
}
