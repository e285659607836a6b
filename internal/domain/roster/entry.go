package roster

import (
	"time"

	"cloud.google.com/go/civil"
)

// Slot identifies which of the two weekly services an entry belongs to.
type Slot int

const (
	SlotA Slot = iota // primary weekday
	SlotB             // primary + SecondaryOffsetDays
)

const (
	PrimaryWeekday      = time.Monday
	SecondaryOffsetDays = 2
)

// Labels double as weekday and service names in the persisted file.
const (
	LabelSlotA = "Segunda"
	LabelSlotB = "Quarta"
)

func (s Slot) Label() string {
	switch s {
	case SlotA:
		return LabelSlotA
	case SlotB:
		return LabelSlotB
	default:
		return ""
	}
}

func (s Slot) String() string {
	switch s {
	case SlotA:
		return "A"
	case SlotB:
		return "B"
	default:
		return "?"
	}
}

// SlotForDate derives the slot from the weekday of d. ok is false for any
// weekday without a service.
func SlotForDate(d civil.Date) (Slot, bool) {
	switch weekday(d) {
	case PrimaryWeekday:
		return SlotA, true
	case (PrimaryWeekday + SecondaryOffsetDays) % 7:
		return SlotB, true
	default:
		return 0, false
	}
}

// SlotForLabel maps a persisted label back to its slot.
func SlotForLabel(label string) (Slot, bool) {
	switch label {
	case LabelSlotA:
		return SlotA, true
	case LabelSlotB:
		return SlotB, true
	default:
		return 0, false
	}
}

// Entry is one assignment of an organist to a service. Entries are values
// and are never modified after generation.
type Entry struct {
	Date     civil.Date
	Slot     Slot
	Assignee string
}

// Schedule is a chronological list of entries, two per week.
type Schedule []Entry

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}
