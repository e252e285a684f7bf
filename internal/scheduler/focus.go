package scheduler

import (
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

const defaultFocusMin = 25

// FocusDuration is the length of one focus-timer session for the profile:
// the study-method minutes when they are in [15, 120], otherwise a length
// derived from the work style.
func FocusDuration(p *domain.Profile) time.Duration {
	if n, ok := studyMethodMinutes(studyChunkPattern, p.StudyMethod); ok && n >= 15 && n <= 120 {
		return time.Duration(n) * time.Minute
	}
	switch p.WorkStyle {
	case domain.WorkStyleShortBursts:
		return 25 * time.Minute
	case domain.WorkStyleLongSessions:
		return 60 * time.Minute
	case domain.WorkStyleMixed:
		return 40 * time.Minute
	}
	return defaultFocusMin * time.Minute
}
