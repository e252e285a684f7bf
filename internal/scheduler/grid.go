package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

const (
	HorizonDays = 14
	SlotMinutes = 30
	DayStartMin = 6 * 60
	DayEndMin   = 24 * 60

	reviewStartMin = 8 * 60
	reviewEndMin   = 11 * 60 // inclusive
)

var dayNames = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

var weekendKeys = map[string]string{"Sat": "Saturday", "Sun": "Sunday"}

// Slot is one 30-minute cell of a day's availability.
type Slot struct {
	StartMin        int
	Available       bool
	Personal        bool
	ReviewPreferred bool
}

// DaySlots is the availability of one horizon day. Fixed holds every raw
// fixed interval applied to the day, aligned or not.
type DaySlots struct {
	Date    time.Time
	DayName string
	Slots   []Slot
	Fixed   []domain.TimeRange
}

// Grid is the planning horizon, one DaySlots per day starting today.
type Grid []DaySlots

func newDaySlots(date time.Time) DaySlots {
	day := DaySlots{
		Date:    date,
		DayName: dayNames[date.Weekday()],
		Slots:   make([]Slot, 0, (DayEndMin-DayStartMin)/SlotMinutes),
	}
	for m := DayStartMin; m < DayEndMin; m += SlotMinutes {
		day.Slots = append(day.Slots, Slot{StartMin: m, Available: true})
	}
	return day
}

func (d *DaySlots) IsWeekend() bool {
	_, ok := weekendKeys[d.DayName]
	return ok
}

// At returns the wall-clock time minute minutes after the day's midnight.
func (d *DaySlots) At(minute int) time.Time {
	y, m, dd := d.Date.Date()
	return time.Date(y, m, dd, 0, minute, 0, 0, d.Date.Location())
}

// EndOfDay is 23:59 of the day.
func (d *DaySlots) EndOfDay() time.Time {
	return d.At(23*60 + 59)
}

// block closes every slot whose start falls inside one of ranges, records
// the ranges on the day and appends one raw fixed block per 30-minute slice.
func (d *DaySlots) block(ranges []domain.TimeRange, label string, category domain.FixedCategory, out []domain.FixedBlock) []domain.FixedBlock {
	for _, r := range ranges {
		for i := range d.Slots {
			if r.Contains(d.Slots[i].StartMin) {
				d.Slots[i].Available = false
			}
		}
		d.Fixed = append(d.Fixed, r)
		for m := r.StartMin; m < r.EndMin; m += SlotMinutes {
			out = append(out, domain.FixedBlock{
				Label:    label,
				Category: category,
				Start:    d.At(m),
				End:      d.At(min(m+SlotMinutes, r.EndMin)),
			})
		}
	}
	return out
}

// reservePersonalTime closes slots from the end of the day backward until the
// daily share of the weekly personal time is used up.
func (d *DaySlots) reservePersonalTime(weeklyHours float64) {
	perDay := int(math.Floor(weeklyHours * 60 / 7))
	if perDay <= 0 {
		return
	}
	assigned := 0
	for i := len(d.Slots) - 1; i >= 0 && assigned < perDay; i-- {
		d.Slots[i].Available = false
		d.Slots[i].Personal = true
		assigned += SlotMinutes
	}
}

func (d *DaySlots) markReviewPreferred() {
	for i := range d.Slots {
		if d.Slots[i].StartMin >= reviewStartMin && d.Slots[i].StartMin <= reviewEndMin {
			d.Slots[i].ReviewPreferred = true
		}
	}
}

// coveredSlots returns the indexes of every slot overlapping [startMin, endMin).
func (d *DaySlots) coveredSlots(startMin, endMin int) []int {
	var idx []int
	for i, s := range d.Slots {
		if s.StartMin < endMin && s.StartMin+SlotMinutes > startMin {
			idx = append(idx, i)
		}
	}
	return idx
}

func (d *DaySlots) overlapsFixed(startMin, endMin int) bool {
	for _, r := range d.Fixed {
		if r.Overlaps(startMin, endMin) {
			return true
		}
	}
	return false
}

// BuildGrid lays out HorizonDays days starting at the local midnight of start
// and applies the profile's commitments, breaks, weekend activities,
// personal time and review preference. It returns the grid together with the
// raw (unmerged) fixed blocks.
func BuildGrid(p *domain.Profile, start time.Time) (Grid, []domain.FixedBlock) {
	origin := midnight(start)
	grid := make(Grid, 0, HorizonDays)
	var fixed []domain.FixedBlock

	for i := 0; i < HorizonDays; i++ {
		day := newDaySlots(origin.AddDate(0, 0, i))

		if !day.IsWeekend() {
			for _, c := range p.WeeklySchedule[day.DayName] {
				fixed = day.block(c.Ranges, c.Label(domain.DefaultCommitmentLabel), domain.FixedRoutine, fixed)
			}
		}

		fixed = day.block(p.BreakTimes, domain.BreakLabel, domain.FixedBreak, fixed)

		if key, ok := weekendKeys[day.DayName]; ok {
			for _, c := range p.WeekendSchedule[key] {
				fixed = day.block(c.Ranges, c.Label(domain.DefaultWeekendLabel), domain.FixedWeekend, fixed)
			}
		}

		day.reservePersonalTime(p.WeeklyPersonalHours)
		if p.WeeklyReviewHours > 0 {
			day.markReviewPreferred()
		}

		grid = append(grid, day)
	}
	return grid, fixed
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
