package console

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"organist_rotation/internal/app"
	"organist_rotation/internal/domain/reminder"
	"organist_rotation/internal/domain/roster"
	"organist_rotation/internal/infra/logger"
	"organist_rotation/internal/infra/storage"

	"cloud.google.com/go/civil"
)

type fixedClock civil.Date

func (c fixedClock) Today() civil.Date { return civil.Date(c) }

type fakeScheduler struct {
	started, stopped bool
	startErr         error
}

func (f *fakeScheduler) Start() error { f.started = true; return f.startErr }
func (f *fakeScheduler) Stop() { f.stopped = true }
func (f *fakeScheduler) Next() time.Time { return time.Time{} }

type testEnv struct {
	handler   *Handler
	out       *bytes.Buffer
	repo      *storage.FileScheduleRepository
	scheduler *fakeScheduler
}

func newTestEnv(t *testing.T, today string) *testEnv {
	t.Helper()
	d, err := civil.ParseDate(today)
	if err != nil {
		t.Fatal(err)
	}
	repo := storage.NewFileScheduleRepository(filepath.Join(t.TempDir(), "escala.json"))
	clk := fixedClock(d)
	schedules := app.NewScheduleService(roster.NewGenerator(roster.Default()), repo, logger.Nop())
	reminders := app.NewReminderService(repo, clk, "America/Sao_Paulo", reminder.DefaultLeadDays, logger.Nop())
	out := &bytes.Buffer{}
	sched := &fakeScheduler{}
	return &testEnv{
		handler:   NewHandler(schedules, reminders, clk, sched, out, logger.Nop()),
		out:       out,
		repo:      repo,
		scheduler: sched,
	}
}

func TestNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	if err := env.handler.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for _, want := range []string{"generate <semanas>", "list", "remind-today", "serve", "padrão 5"} {
		if !strings.Contains(env.out.String(), want) {
			t.Fatalf("usage missing %q:\n%s", want, env.out.String())
		}
	}
}

func TestGenerateThenListAndRemind(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	ctx := context.Background()

	if err := env.handler.Run(ctx, []string{"generate", "1", "--start", "2024-01-01"}); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	want := "Escala gerada para 1 semanas a partir de 2024-01-01.\n" +
		"Escala de organistas:\n08/01/2024 (Segunda) → Leila\n10/01/2024 (Quarta) → Juliana\n"
	if env.out.String() != want {
		t.Fatalf("generate output = %q, want %q", env.out.String(), want)
	}

	env.out.Reset()
	if err := env.handler.Run(ctx, []string{"list"}); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.HasSuffix(want, env.out.String()) {
		t.Fatalf("list output = %q", env.out.String())
	}

	env.out.Reset()
	if err := env.handler.Run(ctx, []string{"remind-today"}); err != nil {
		t.Fatalf("remind-today error: %v", err)
	}
	if !strings.Contains(env.out.String(), "Leila está escalada para o culto de Segunda no dia 08/01/2024") {
		t.Fatalf("remind-today output = %q", env.out.String())
	}
	if strings.Contains(env.out.String(), "Juliana") {
		t.Fatalf("Wednesday entry should not be due: %q", env.out.String())
	}
}

func TestGenerateFlagBeforePositional(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	if err := env.handler.Run(context.Background(), []string{"generate", "--start=2024-01-07", "2"}); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	s, err := env.repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s) != 4 || s[0].Date.String() != "2024-01-08" {
		t.Fatalf("stored schedule = %+v", s)
	}
}

func TestGenerateDefaultsStartToToday(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-08")
	if err := env.handler.Run(context.Background(), []string{"generate", "1"}); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	s, _ := env.repo.Load(context.Background())
	if len(s) != 2 || s[0].Date.String() != "2024-01-15" {
		t.Fatalf("stored schedule = %+v", s)
	}
}

func TestGenerateNegativeWeeksStoresEmpty(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	if err := env.handler.Run(context.Background(), []string{"generate", "-2"}); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if !strings.Contains(env.out.String(), app.MsgNoSchedule) {
		t.Fatalf("output = %q", env.out.String())
	}
}

func TestEmptyStore(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	ctx := context.Background()

	for _, cmd := range []string{"list", "remind-today"} {
		env.out.Reset()
		if err := env.handler.Run(ctx, []string{cmd}); err != nil {
			t.Fatalf("%s error: %v", cmd, err)
		}
		if strings.TrimSpace(env.out.String()) != app.MsgNoSchedule {
			t.Fatalf("%s output = %q", cmd, env.out.String())
		}
	}
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad start", args: []string{"generate", "4", "--start", "01/01/2024"}},
		{name: "impossible start", args: []string{"generate", "4", "--start", "2024-02-30"}},
		{name: "missing weeks", args: []string{"generate"}},
		{name: "weeks not a number", args: []string{"generate", "doze"}},
		{name: "unknown flag", args: []string{"generate", "4", "--from", "2024-01-01"}},
		{name: "negative lead", args: []string{"remind-today", "--lead", "-1"}},
		{name: "extra args", args: []string{"remind-today", "now"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, "2024-01-03")
			err := env.handler.Run(context.Background(), tt.args)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Run(%v) error = %v, want ErrInvalidInput", tt.args, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	if err := env.handler.Run(context.Background(), []string{"delete"}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("Run error = %v, want ErrUnknownCommand", err)
	}
}

func TestRemindTodayLeadOverride(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-07")
	ctx := context.Background()
	if err := env.handler.Run(ctx, []string{"generate", "1", "--start", "2024-01-01"}); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	env.out.Reset()
	if err := env.handler.Run(ctx, []string{"remind-today", "--lead", "1"}); err != nil {
		t.Fatalf("remind-today error: %v", err)
	}
	if !strings.Contains(env.out.String(), "Leila") || !strings.Contains(env.out.String(), "1 dias") {
		t.Fatalf("output = %q", env.out.String())
	}
}

func TestServeStartsAndStops(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, "2024-01-03")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := env.handler.Run(ctx, []string{"serve"}); err != nil {
		t.Fatalf("serve error: %v", err)
	}
	if !env.scheduler.started || !env.scheduler.stopped {
		t.Fatalf("scheduler started=%v stopped=%v", env.scheduler.started, env.scheduler.stopped)
	}

	env.scheduler.startErr = errors.New("bad spec")
	if err := env.handler.Run(context.Background(), []string{"serve"}); !errors.Is(err, env.scheduler.startErr) {
		t.Fatalf("serve error = %v", err)
	}
}
