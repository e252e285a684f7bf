package scheduler

import (
	"sort"

	"github.com/alexanderramin/planwise/internal/domain"
)

// RankTasks returns a copy of tasks in placement order:
// 1. Priority weight: most urgent first, unknown labels last
// 2. Deadline "date T time": earliest first (lexical)
// Ties keep their input order.
func RankTasks(tasks []*domain.Task) []*domain.Task {
	ranked := make([]*domain.Task, len(tasks))
	copy(ranked, tasks)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		wa, wb := a.Priority.RankWeight(), b.Priority.RankWeight()
		if wa != wb {
			return wa < wb
		}
		return a.DeadlineKey() < b.DeadlineKey()
	})
	return ranked
}
