package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Weekdays are the keys of Profile.WeeklySchedule, in calendar order.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}

// WeekendDays are the keys of Profile.WeekendSchedule.
var WeekendDays = []string{"Saturday", "Sunday"}

const (
	DefaultCommitmentLabel = "Fixed commitment"
	DefaultWeekendLabel    = "Weekend activity"
	BreakLabel             = "Break"
)

var ErrInvalidProfile = errors.New("invalid profile")

// Commitment is a named recurring occupation of one or more time ranges.
// Ranges is derived from Time when the commitment is built.
type Commitment struct {
	Name        string
	Time        string
	Description string
	Ranges      []TimeRange
}

func NewCommitment(name, timeText, description string) Commitment {
	return Commitment{
		Name:        name,
		Time:        timeText,
		Description: description,
		Ranges:      ParseTimeRanges(timeText),
	}
}

// Label is the display label used for fixed blocks.
func (c Commitment) Label(fallback string) string {
	if c.Name != "" {
		return c.Name
	}
	return fallback
}

type Profile struct {
	Name     string
	AgeGroup string

	WeeklySchedule  map[string][]Commitment
	WeekendSchedule map[string][]Commitment
	SleepWeekdays   string
	SleepWeekends   string

	BreakTimesText string
	BreakTimes     []TimeRange

	IsProcrastinator   bool
	ProcrastinatorType ProcrastinatorType
	TroubleFinishing   TroubleFinishing
	WorkStyle          WorkStyle
	ProductiveTime     ProductiveTime
	StudyMethod        string

	WeeklyPersonalHours float64
	WeeklyReviewHours   float64

	UpdatedAt time.Time
}

func NewProfile() *Profile {
	return &Profile{
		WeeklySchedule:  make(map[string][]Commitment),
		WeekendSchedule: make(map[string][]Commitment),
	}
}

// SetBreakTimes stores the raw break text and its parsed ranges.
func (p *Profile) SetBreakTimes(text string) {
	p.BreakTimesText = text
	p.BreakTimes = ParseTimeRanges(text)
}

// Normalize re-derives every parsed range from its raw text and makes sure
// both schedule maps are non-nil.
func (p *Profile) Normalize() {
	if p.WeeklySchedule == nil {
		p.WeeklySchedule = make(map[string][]Commitment)
	}
	if p.WeekendSchedule == nil {
		p.WeekendSchedule = make(map[string][]Commitment)
	}
	for _, schedule := range []map[string][]Commitment{p.WeeklySchedule, p.WeekendSchedule} {
		for day, list := range schedule {
			for i := range list {
				list[i].Ranges = ParseTimeRanges(list[i].Time)
			}
			schedule[day] = list
		}
	}
	p.BreakTimes = ParseTimeRanges(p.BreakTimesText)
}

func (p *Profile) Validate() error {
	for day := range p.WeeklySchedule {
		if !slices.Contains(Weekdays, day) {
			return fmt.Errorf("%w: weekly schedule key %q is not one of Mon-Fri", ErrInvalidProfile, day)
		}
	}
	for day := range p.WeekendSchedule {
		if !slices.Contains(WeekendDays, day) {
			return fmt.Errorf("%w: weekend schedule key %q is not Saturday or Sunday", ErrInvalidProfile, day)
		}
	}
	if p.WeeklyPersonalHours < 0 {
		return fmt.Errorf("%w: weekly personal time must not be negative", ErrInvalidProfile)
	}
	if p.WeeklyReviewHours < 0 {
		return fmt.Errorf("%w: weekly review hours must not be negative", ErrInvalidProfile)
	}
	return nil
}

func (p *Profile) HasTroubleFinishing() bool {
	return p.TroubleFinishing == TroubleFinishingYes
}

// ProductiveWindow returns the productive window in minutes from midnight.
func (p *Profile) ProductiveWindow() TimeRange {
	start, end := p.ProductiveTime.Window()
	return TimeRange{StartMin: start * 60, EndMin: end * 60}
}
