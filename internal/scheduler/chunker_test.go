package scheduler

import (
	"testing"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestPlanChunks(t *testing.T) {
	cases := []struct {
		name    string
		hours   float64
		profile func(*domain.Profile)
		want    ChunkPlan
	}{
		{
			name:    "defaults",
			hours:   2,
			profile: func(p *domain.Profile) {},
			want:    ChunkPlan{ChunkSizeMin: 30, BreakMin: 0, ChunkCount: 4, BufferMin: 30},
		},
		{
			name:    "short bursts",
			hours:   1.25,
			profile: func(p *domain.Profile) { p.WorkStyle = domain.WorkStyleShortBursts },
			want:    ChunkPlan{ChunkSizeMin: 25, BreakMin: 5, ChunkCount: 3, BufferMin: 30},
		},
		{
			name:    "long sessions",
			hours:   2,
			profile: func(p *domain.Profile) { p.WorkStyle = domain.WorkStyleLongSessions },
			want:    ChunkPlan{ChunkSizeMin: 60, BreakMin: 10, ChunkCount: 2, BufferMin: 30},
		},
		{
			name:    "mixed keeps default break",
			hours:   2,
			profile: func(p *domain.Profile) { p.WorkStyle = domain.WorkStyleMixed },
			want:    ChunkPlan{ChunkSizeMin: 40, BreakMin: 0, ChunkCount: 3, BufferMin: 30},
		},
		{
			name:    "study method chunk and break",
			hours:   2,
			profile: func(p *domain.Profile) { p.StudyMethod = "50 minute blocks with a 10 min break" },
			want:    ChunkPlan{ChunkSizeMin: 50, BreakMin: 10, ChunkCount: 3, BufferMin: 30},
		},
		{
			name:    "pomodoro text takes the break number",
			hours:   1,
			profile: func(p *domain.Profile) { p.StudyMethod = "Pomodoro: 25 min work, 5 min break" },
			want:    ChunkPlan{ChunkSizeMin: 25, BreakMin: 5, ChunkCount: 3, BufferMin: 30},
		},
		{
			name:    "break number is the one next to break",
			hours:   3,
			profile: func(p *domain.Profile) { p.StudyMethod = "90 min then a 15 min break" },
			want:    ChunkPlan{ChunkSizeMin: 90, BreakMin: 15, ChunkCount: 2, BufferMin: 30},
		},
		{
			name:    "study method out of range ignored",
			hours:   1,
			profile: func(p *domain.Profile) { p.StudyMethod = "5 minute sprints" },
			want:    ChunkPlan{ChunkSizeMin: 30, BreakMin: 0, ChunkCount: 2, BufferMin: 30},
		},
		{
			name:  "trouble finishing clamps",
			hours: 2,
			profile: func(p *domain.Profile) {
				p.WorkStyle = domain.WorkStyleLongSessions
				p.TroubleFinishing = domain.TroubleFinishingYes
			},
			want: ChunkPlan{ChunkSizeMin: 25, BreakMin: 10, ChunkCount: 5, BufferMin: 60},
		},
		{
			name:    "procrastinator buffer",
			hours:   1,
			profile: func(p *domain.Profile) { p.IsProcrastinator = true },
			want:    ChunkPlan{ChunkSizeMin: 30, BreakMin: 0, ChunkCount: 2, BufferMin: 60},
		},
		{
			name:  "buffers do not stack",
			hours: 1,
			profile: func(p *domain.Profile) {
				p.IsProcrastinator = true
				p.TroubleFinishing = domain.TroubleFinishingYes
			},
			want: ChunkPlan{ChunkSizeMin: 25, BreakMin: 5, ChunkCount: 3, BufferMin: 60},
		},
		{
			name:    "tiny task is one chunk",
			hours:   0.1,
			profile: func(p *domain.Profile) {},
			want:    ChunkPlan{ChunkSizeMin: 30, BreakMin: 0, ChunkCount: 1, BufferMin: 30},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.NewProfile()
			tc.profile(p)
			task := &domain.Task{DurationHours: tc.hours}
			assert.Equal(t, tc.want, PlanChunks(task, p))
		})
	}
}

func TestFocusDuration(t *testing.T) {
	p := domain.NewProfile()
	assert.Equal(t, "25m0s", FocusDuration(p).String())

	p.WorkStyle = domain.WorkStyleMixed
	assert.Equal(t, "40m0s", FocusDuration(p).String())

	p.WorkStyle = domain.WorkStyleLongSessions
	assert.Equal(t, "1h0m0s", FocusDuration(p).String())

	p.StudyMethod = "45 min deep work"
	assert.Equal(t, "45m0s", FocusDuration(p).String())

	p.StudyMethod = "200 minutes straight"
	assert.Equal(t, "1h0m0s", FocusDuration(p).String(), "out of range falls back to work style")
}
