package scheduler

import (
	"strings"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

const dayDuration = 24 * time.Hour

// SlotInput is everything the scorer looks at for one candidate slot.
type SlotInput struct {
	Profile         *domain.Profile
	TaskName        string
	PriorityWeight  int
	SlotStart       time.Time
	StartMin        int
	IsWeekend       bool
	ReviewPreferred bool

	Deadline      time.Time
	LatestAllowed time.Time
	HorizonStart  time.Time
}

// ScoredSlot is a candidate slot index on a day together with its score.
type ScoredSlot struct {
	Index int
	Start time.Time
	Score float64
}

// ScoreSlot sums every personalization factor for a slot. Higher is better.
func ScoreSlot(in SlotInput) float64 {
	factors := []func(SlotInput) float64{
		scoreProductiveWindow,
		scoreProcrastinatorType,
		scoreWorkStyle,
		scoreReview,
	}
	var score float64
	for _, f := range factors {
		score += f(in)
	}
	return score
}

func insideProductiveWindow(in SlotInput) bool {
	return in.Profile.ProductiveWindow().Contains(in.StartMin)
}

func scoreProductiveWindow(in SlotInput) float64 {
	if insideProductiveWindow(in) {
		if in.PriorityWeight <= 2 {
			return 15
		}
		return 10
	}
	if in.PriorityWeight >= 3 {
		return 3
	}
	return 0
}

func scoreProcrastinatorType(in SlotInput) float64 {
	if !in.Profile.IsProcrastinator {
		return 0
	}
	switch in.Profile.ProcrastinatorType {
	case domain.ProcrastinatorDeadlineDriven:
		return scoreDeadlinePressure(in)
	case domain.ProcrastinatorDistraction:
		if in.StartMin < 9*60 || in.StartMin >= 20*60 {
			return 3
		}
	case domain.ProcrastinatorPerfectionist:
		if insideProductiveWindow(in) {
			return 3
		}
	case domain.ProcrastinatorOverwhelmed:
		if in.StartMin < 12*60 {
			return 4
		}
	case domain.ProcrastinatorAvoidant:
		if in.StartMin >= 9*60 && in.StartMin < 17*60 {
			return 3
		}
	case domain.ProcrastinatorLackOfMotivation:
		return 2
	}
	return 0
}

// scoreDeadlinePressure favours slots in the last stretch before the
// deadline, plus afternoon and early evening starts.
func scoreDeadlinePressure(in SlotInput) float64 {
	var score float64
	daysUntilDeadline := float64(in.Deadline.Sub(in.SlotStart)) / float64(dayDuration)
	totalDays := float64(in.LatestAllowed.Sub(in.HorizonStart)) / float64(dayDuration)
	switch {
	case daysUntilDeadline <= totalDays*0.3:
		score += 8
	case daysUntilDeadline <= totalDays*0.5:
		score += 4
	}
	if in.StartMin >= 14*60 && in.StartMin < 20*60 {
		score += 3
	}
	return score
}

func scoreWorkStyle(in SlotInput) float64 {
	switch {
	case in.IsWeekend && in.Profile.WorkStyle == domain.WorkStyleLongSessions:
		return 2
	case !in.IsWeekend && in.Profile.WorkStyle == domain.WorkStyleShortBursts:
		return 2
	}
	return 0
}

func scoreReview(in SlotInput) float64 {
	if in.ReviewPreferred && strings.Contains(strings.ToLower(in.TaskName), "review") {
		return 5
	}
	return 0
}
