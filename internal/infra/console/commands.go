package console

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"organist_rotation/internal/app"

	"cloud.google.com/go/civil"
	"github.com/sirupsen/logrus"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrUnknownCommand = errors.New("unknown command")

// Scheduler is the long-running reminder loop used by the serve command.
type Scheduler interface {
	Start() error
	Stop()
	Next() time.Time
}

// Handler dispatches command-line invocations to the application services.
type Handler struct {
	schedules *app.ScheduleService
	reminders *app.ReminderService
	clock     app.Today
	scheduler Scheduler
	out       io.Writer
	logger    *logrus.Entry
}

func NewHandler(
	schedules *app.ScheduleService,
	reminders *app.ReminderService,
	clock app.Today,
	scheduler Scheduler, // may be nil when serve is not available
	out io.Writer,
	logger *logrus.Entry,
) *Handler {
	return &Handler{
		schedules: schedules,
		reminders: reminders,
		clock:     clock,
		scheduler: scheduler,
		out:       out,
		logger:    logger,
	}
}

// Run executes the command named by args[0].
func (h *Handler) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		h.PrintUsage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	logCtx := h.logger.WithField("command", cmd)
	logCtx.Debug("Processing command")

	switch cmd {
	case "generate":
		return h.generate(ctx, rest)
	case "list":
		return h.list(ctx)
	case "remind-today":
		return h.remindToday(ctx, rest)
	case "serve":
		return h.serve(ctx)
	case "help", "-h", "--help":
		h.PrintUsage()
		return nil
	default:
		logCtx.Warn("Unknown command")
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func (h *Handler) generate(ctx context.Context, args []string) error {
	fs := newFlagSet("generate")
	startStr := fs.String("start", "", "base date (YYYY-MM-DD); the schedule begins on the next Monday after it")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: generate expects exactly one <week_count>", ErrInvalidInput)
	}
	weeks, err := strconv.Atoi(positional[0])
	if err != nil {
		return fmt.Errorf("%w: week_count %q is not a number", ErrInvalidInput, positional[0])
	}

	start := h.clock.Today()
	if *startStr != "" {
		start, err = civil.ParseDate(strings.TrimSpace(*startStr))
		if err != nil {
			return fmt.Errorf("%w: --start %q must be a date in YYYY-MM-DD form", ErrInvalidInput, *startStr)
		}
	}

	schedule, err := h.schedules.Generate(ctx, start, weeks)
	if err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Escala gerada para %d semanas a partir de %s.\n", weeks, start)
	h.schedules.Print(h.out, schedule)
	return nil
}

func (h *Handler) list(ctx context.Context) error {
	schedule, err := h.schedules.List(ctx)
	if err != nil {
		return err
	}
	h.schedules.Print(h.out, schedule)
	return nil
}

func (h *Handler) remindToday(ctx context.Context, args []string) error {
	fs := newFlagSet("remind-today")
	lead := fs.Int("lead", h.reminders.LeadDays(), "days before a service at which its reminder is due")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(positional) != 0 {
		return fmt.Errorf("%w: remind-today takes no arguments", ErrInvalidInput)
	}
	if *lead < 0 {
		return fmt.Errorf("%w: --lead must not be negative", ErrInvalidInput)
	}

	svc := h.reminders
	if *lead != svc.LeadDays() {
		svc = svc.WithLeadDays(*lead)
	}
	_, err = svc.RemindToday(ctx, h.out)
	return err
}

// serve runs the reminder scheduler until ctx is cancelled.
func (h *Handler) serve(ctx context.Context) error {
	if h.scheduler == nil {
		return fmt.Errorf("%w: serve is not available", ErrUnknownCommand)
	}
	if err := h.scheduler.Start(); err != nil {
		return err
	}
	h.logger.WithField("next_run", h.scheduler.Next()).Info("Serving daily reminders; press Ctrl+C to stop")

	<-ctx.Done()
	h.scheduler.Stop()
	return nil
}

// PrintUsage writes the command summary.
func (h *Handler) PrintUsage() {
	var helpText strings.Builder
	helpText.WriteString("Rodízio de organistas (sem envio de mensagens)\n\n")
	helpText.WriteString("Uso: rota <comando> [opções]\n\n")
	helpText.WriteString("  generate <semanas> [--start AAAA-MM-DD]\n      Gera a escala para N semanas a partir da próxima segunda após a data base (padrão: hoje).\n")
	helpText.WriteString("  list\n      Lista a escala salva.\n")
	helpText.WriteString("  remind-today [--lead N]\n      Simula os lembretes de hoje (cultos em N dias, padrão ")
	helpText.WriteString(strconv.Itoa(h.reminders.LeadDays()))
	helpText.WriteString(").\n")
	if h.scheduler != nil {
		helpText.WriteString("  serve\n      Executa remind-today diariamente até ser interrompido.\n")
	}
	helpText.WriteString("  help\n      Mostra esta mensagem.\n")
	fmt.Fprint(h.out, helpText.String())
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseInterspersed parses flags that may appear before or after positional
// arguments and returns the positionals in order. Negative numbers are
// positionals, not flags.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if len(args) > 0 {
			if _, err := strconv.Atoi(args[0]); err == nil {
				positional = append(positional, args[0])
				args = args[1:]
				continue
			}
		}
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}
