package app

import (
	"context"
	"testing"

	"organist_rotation/internal/domain/roster"

	"cloud.google.com/go/civil"
)

type mockScheduleRepo struct {
	stored   roster.Schedule
	replaces int
	loadErr  error
	saveErr  error
}

func (m *mockScheduleRepo) Replace(_ context.Context, s roster.Schedule) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.replaces++
	m.stored = append(roster.Schedule(nil), s...)
	return nil
}

func (m *mockScheduleRepo) Load(_ context.Context) (roster.Schedule, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append(roster.Schedule{}, m.stored...), nil
}

type fixedClock civil.Date

func (c fixedClock) Today() civil.Date { return civil.Date(c) }

func mustDate(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}
