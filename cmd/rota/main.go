package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"organist_rotation/internal/app"
	"organist_rotation/internal/domain/roster"
	"organist_rotation/internal/infra/clock"
	"organist_rotation/internal/infra/config"
	"organist_rotation/internal/infra/console"
	"organist_rotation/internal/infra/logger"
	"organist_rotation/internal/infra/scheduler"
	"organist_rotation/internal/infra/storage"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Errorf("FATAL: Could not load application configuration: %v", err)
		return 1
	}
	logger.Init(cfg)
	mainLogger := logger.For("main")
	mainLogger.Debugf("Configuration loaded. LogLevel: %s, Environment: %s, Storage: %s", cfg.LogLevel, cfg.Environment, cfg.StorageDriver)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Resolved once; falls back to a fixed offset when tzdata is missing.
	loc := clock.LoadLocation(cfg.Timezone, cfg.TimezoneFallbackHours, logger.For("clock"))
	clk := clock.New(loc)

	r := roster.Default()
	if len(cfg.RosterNames) > 0 {
		r, err = roster.New(cfg.RosterNames)
		if err != nil {
			mainLogger.WithError(err).Error("FATAL: Invalid roster configuration")
			return 1
		}
	}
	mainLogger.WithField("roster_size", r.Len()).Debug("Roster ready")

	repo, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		mainLogger.WithError(err).Error("FATAL: Could not open schedule storage")
		return 1
	}
	defer closeStore()

	scheduleService := app.NewScheduleService(roster.NewGenerator(r), repo, logger.For("schedule_service"))
	reminderService := app.NewReminderService(repo, clk, loc.String(), cfg.LeadDays, logger.For("reminder_service"))
	reminderScheduler := scheduler.NewReminderScheduler(reminderService, os.Stdout, logger.For("scheduler"), loc, cfg.CronSpecReminder)

	handler := console.NewHandler(scheduleService, reminderService, clk, reminderScheduler, os.Stdout, logger.For("console"))

	if err := handler.Run(ctx, args); err != nil {
		if errors.Is(err, console.ErrUnknownCommand) {
			mainLogger.WithError(err).Warn("Unknown command")
			handler.PrintUsage()
			return 2
		}
		if errors.Is(err, console.ErrInvalidInput) {
			mainLogger.WithError(err).Error("FATAL: Invalid input")
			return 1
		}
		mainLogger.WithError(err).Error("FATAL: Command failed")
		return 1
	}
	return 0
}
