package testutil

import (
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/google/uuid"
)

// Task options
type TaskOption func(*domain.Task)

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

// WithDeadline sets the deadline date and, when given, the time of day.
func WithDeadline(date string, clock ...string) TaskOption {
	return func(t *domain.Task) {
		t.Deadline = date
		if len(clock) > 0 {
			t.DeadlineTime = clock[0]
		}
	}
}

func WithDurationHours(h float64) TaskOption {
	return func(t *domain.Task) {
		t.DurationHours = h
	}
}

func WithCategory(c string) TaskOption {
	return func(t *domain.Task) {
		t.Category = c
	}
}

func WithCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

// NewTestTask builds a valid two-hour urgent task due a week from now.
func NewTestTask(name string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Task{
		ID:            uuid.New().String(),
		Name:          name,
		Priority:      domain.PriorityUrgentImportant,
		Category:      domain.DefaultCategory,
		Deadline:      now.AddDate(0, 0, 7).Format(domain.DateLayout),
		DeadlineTime:  domain.DefaultDeadlineTime,
		DurationHours: 2,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Profile options
type ProfileOption func(*domain.Profile)

func WithCommitment(day, name, timeText string) ProfileOption {
	return func(p *domain.Profile) {
		p.WeeklySchedule[day] = append(p.WeeklySchedule[day], domain.NewCommitment(name, timeText, ""))
	}
}

func WithWeekendActivity(day, name, timeText string) ProfileOption {
	return func(p *domain.Profile) {
		p.WeekendSchedule[day] = append(p.WeekendSchedule[day], domain.NewCommitment(name, timeText, ""))
	}
}

func WithBreaks(text string) ProfileOption {
	return func(p *domain.Profile) {
		p.SetBreakTimes(text)
	}
}

func WithWorkStyle(w domain.WorkStyle) ProfileOption {
	return func(p *domain.Profile) {
		p.WorkStyle = w
	}
}

func WithProductiveTime(pt domain.ProductiveTime) ProfileOption {
	return func(p *domain.Profile) {
		p.ProductiveTime = pt
	}
}

func WithProcrastinator(kind domain.ProcrastinatorType) ProfileOption {
	return func(p *domain.Profile) {
		p.IsProcrastinator = true
		p.ProcrastinatorType = kind
	}
}

func WithStudyMethod(s string) ProfileOption {
	return func(p *domain.Profile) {
		p.StudyMethod = s
	}
}

// NewTestProfile builds an empty profile named "Test Student".
func NewTestProfile(opts ...ProfileOption) *domain.Profile {
	p := domain.NewProfile()
	p.Name = "Test Student"
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestGoal(name string) *domain.Goal {
	return &domain.Goal{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     domain.GoalPalette[0],
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
