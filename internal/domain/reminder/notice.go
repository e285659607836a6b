package reminder

import (
	"fmt"

	"organist_rotation/internal/domain/roster"

	"cloud.google.com/go/civil"
)

// Status describes what happened to a notice. Nothing is ever delivered, so
// every notice is simulated.
type Status string

const StatusSimulated Status = "simulated"

// DefaultLeadDays is how many days before a service its organist is reminded.
const DefaultLeadDays = 5

// Notice is a reminder that was due for one schedule entry.
type Notice struct {
	Assignee string
	Date     civil.Date
	Slot     roster.Slot
	Status   Status
	Message  string
}

// FormatDate renders d as DD/MM/YYYY.
func FormatDate(d civil.Date) string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

func messageFor(e roster.Entry, leadDays int) string {
	return fmt.Sprintf(
		"[LEMBRETE SIMULADO] %s está escalada para o culto de %s no dia %s (aviso enviado %d dias antes).",
		e.Assignee, e.Slot.Label(), FormatDate(e.Date), leadDays,
	)
}
