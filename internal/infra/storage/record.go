package storage

import (
	"errors"
	"fmt"

	"organist_rotation/internal/domain/roster"

	"cloud.google.com/go/civil"
)

var ErrCorruptEntry = errors.New("stored schedule entry is invalid")

// entryRecord is the persisted shape of one schedule entry.
type entryRecord struct {
	Date         string `json:"date"`
	WeekdayLabel string `json:"weekday_label"`
	SlotLabel    string `json:"slot_label"`
	Assignee     string `json:"assignee"`
}

func toRecord(e roster.Entry) entryRecord {
	return entryRecord{
		Date:         e.Date.String(),
		WeekdayLabel: e.Slot.Label(),
		SlotLabel:    e.Slot.Label(),
		Assignee:     e.Assignee,
	}
}

func toRecords(s roster.Schedule) []entryRecord {
	out := make([]entryRecord, 0, len(s))
	for _, e := range s {
		out = append(out, toRecord(e))
	}
	return out
}

// toEntry checks that the labels agree with the date's weekday.
func (r entryRecord) toEntry() (roster.Entry, error) {
	d, err := civil.ParseDate(r.Date)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("%w: date %q: %v", ErrCorruptEntry, r.Date, err)
	}
	slot, ok := roster.SlotForDate(d)
	if !ok {
		return roster.Entry{}, fmt.Errorf("%w: %s is not a service day", ErrCorruptEntry, r.Date)
	}
	if labelled, ok := roster.SlotForLabel(r.SlotLabel); !ok || labelled != slot {
		return roster.Entry{}, fmt.Errorf("%w: slot label %q does not match %s", ErrCorruptEntry, r.SlotLabel, r.Date)
	}
	if r.WeekdayLabel != slot.Label() {
		return roster.Entry{}, fmt.Errorf("%w: weekday label %q does not match %s", ErrCorruptEntry, r.WeekdayLabel, r.Date)
	}
	if r.Assignee == "" {
		return roster.Entry{}, fmt.Errorf("%w: %s has no assignee", ErrCorruptEntry, r.Date)
	}
	return roster.Entry{Date: d, Slot: slot, Assignee: r.Assignee}, nil
}

func fromRecords(recs []entryRecord) (roster.Schedule, error) {
	s := make(roster.Schedule, 0, len(recs))
	for i, r := range recs {
		e, err := r.toEntry()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		s = append(s, e)
	}
	return s, nil
}
