package roster

import "cloud.google.com/go/civil"

// Generator produces schedules for a fixed roster.
type Generator struct {
	roster Roster
}

func NewGenerator(r Roster) *Generator {
	return &Generator{roster: r}
}

func (g *Generator) Roster() Roster { return g.roster }

func (g *Generator) Generate(start civil.Date, weeks int) Schedule {
	return Generate(g.roster, start, weeks)
}

// NextPrimary returns the first primary weekday strictly after base. A base
// that already falls on the primary weekday moves a full week ahead.
func NextPrimary(base civil.Date) civil.Date {
	days := (int(PrimaryWeekday) - int(weekday(base)) + 7) % 7
	if days == 0 {
		days = 7
	}
	return base.AddDays(days)
}

// Generate builds weeks*2 entries starting at the first primary weekday after
// start. The assignee index runs across the whole schedule and is not reset
// per week. weeks <= 0 yields an empty schedule.
func Generate(r Roster, start civil.Date, weeks int) Schedule {
	if weeks <= 0 || r.Len() == 0 {
		return Schedule{}
	}

	first := NextPrimary(start)
	out := make(Schedule, 0, weeks*2)
	idx := 0
	for w := 0; w < weeks; w++ {
		primary := first.AddDays(7 * w)
		secondary := primary.AddDays(SecondaryOffsetDays)

		out = append(out, Entry{Date: primary, Slot: SlotA, Assignee: r.At(idx)})
		idx++
		out = append(out, Entry{Date: secondary, Slot: SlotB, Assignee: r.At(idx)})
		idx++
	}
	return out
}
