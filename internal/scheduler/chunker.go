package scheduler

import (
	"regexp"
	"strconv"

	"github.com/alexanderramin/planwise/internal/domain"
)

const (
	defaultChunkMin  = 30
	defaultBufferMin = 30
	extendedBuffer   = 60
)

var (
	studyChunkPattern = regexp.MustCompile(`(?i)(\d+)[\s-]*(?:min|minute)`)
	studyBreakPattern = regexp.MustCompile(`(?i)(\d+)[\s-]*(?:min|minute)s?[^\d]*break`)
)

// ChunkPlan describes how a task is split into work chunks.
type ChunkPlan struct {
	ChunkSizeMin int
	BreakMin     int
	ChunkCount   int
	BufferMin    int
}

// PlanChunks sizes a task's chunks from the profile's work style, study
// method and follow-through answers.
func PlanChunks(task *domain.Task, p *domain.Profile) ChunkPlan {
	chunk, brk := defaultChunkMin, 0

	switch p.WorkStyle {
	case domain.WorkStyleShortBursts:
		chunk, brk = 25, 5
	case domain.WorkStyleLongSessions:
		chunk, brk = 60, 10
	case domain.WorkStyleMixed:
		chunk = 40
	}

	if n, ok := studyMethodMinutes(studyChunkPattern, p.StudyMethod); ok && n >= 15 && n <= 120 {
		chunk = n
	}
	if b, ok := studyMethodMinutes(studyBreakPattern, p.StudyMethod); ok && b <= 30 {
		brk = b
	}

	if p.HasTroubleFinishing() {
		chunk = min(chunk, 25)
		brk = max(brk, 5)
	}

	count := max(1, ceilDiv(task.DurationMinutes(), chunk))

	return ChunkPlan{
		ChunkSizeMin: chunk,
		BreakMin:     brk,
		ChunkCount:   count,
		BufferMin:    BufferMinutes(p),
	}
}

// BufferMinutes is the safety margin kept before every deadline.
func BufferMinutes(p *domain.Profile) int {
	buffer := defaultBufferMin
	if p.IsProcrastinator {
		buffer = extendedBuffer
	}
	if p.HasTroubleFinishing() {
		buffer = max(buffer, extendedBuffer)
	}
	return buffer
}

func studyMethodMinutes(pattern *regexp.Regexp, text string) (int, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
