package reminder

import (
	"organist_rotation/internal/domain/roster"

	"cloud.google.com/go/civil"
)

// DaysUntil is the signed number of days from today to d.
func DaysUntil(d, today civil.Date) int {
	return d.DaysSince(today)
}

// EvaluateDue returns a notice for every entry exactly leadDays after today.
// Entries closer or further away are not due; there is no catch-up for a
// day on which evaluation did not run.
func EvaluateDue(s roster.Schedule, today civil.Date, leadDays int) []Notice {
	notices := make([]Notice, 0)
	for _, e := range s {
		if DaysUntil(e.Date, today) != leadDays {
			continue
		}
		notices = append(notices, Notice{
			Assignee: e.Assignee,
			Date:     e.Date,
			Slot:     e.Slot,
			Status:   StatusSimulated,
			Message:  messageFor(e, leadDays),
		})
	}
	return notices
}
