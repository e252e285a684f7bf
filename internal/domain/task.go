package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayout          = "2006-01-02"
	DefaultDeadlineTime = "23:59"
	DefaultCategory     = "study"
)

var ErrInvalidTask = errors.New("invalid task")

type Task struct {
	ID               string
	Name             string
	Priority         Priority
	Category         string
	Deadline         string // YYYY-MM-DD
	DeadlineTime     string // HH:MM
	DurationHours    float64
	ComputerRequired bool
	Completed        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks the fields the scheduler relies on.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTask)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidTask, t.Priority)
	}
	if _, err := time.Parse(DateLayout, t.Deadline); err != nil {
		return fmt.Errorf("%w: deadline %q is not YYYY-MM-DD", ErrInvalidTask, t.Deadline)
	}
	if _, ok := ParseClock(t.EffectiveDeadlineTime()); !ok {
		return fmt.Errorf("%w: deadline time %q is not HH:MM", ErrInvalidTask, t.DeadlineTime)
	}
	if t.DurationHours <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidTask)
	}
	return nil
}

func (t *Task) EffectiveDeadlineTime() string {
	if t.DeadlineTime == "" {
		return DefaultDeadlineTime
	}
	return t.DeadlineTime
}

func (t *Task) EffectiveCategory() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// DeadlineAt combines the deadline date and time in loc.
func (t *Task) DeadlineAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, t.Deadline, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing deadline date: %w", err)
	}
	minutes, ok := ParseClock(t.EffectiveDeadlineTime())
	if !ok {
		return time.Time{}, fmt.Errorf("parsing deadline time %q", t.DeadlineTime)
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// DeadlineKey is the "date T time" string tasks are ranked by.
func (t *Task) DeadlineKey() string {
	return t.Deadline + "T" + t.EffectiveDeadlineTime()
}

// DurationMinutes rounds the estimate up to whole minutes.
func (t *Task) DurationMinutes() int {
	// Tolerate float noise such as 0.1*60 = 6.000000000000001.
	return int(math.Ceil(t.DurationHours*60 - 1e-9))
}
