package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
)

const mergeGapTolerance = time.Minute

// MergeFixedBlocks coalesces raw fixed blocks that share a date, label and
// category and sit at most one minute apart. Blocks from different groups are
// never merged even when they overlap. The result is sorted by start.
func MergeFixedBlocks(blocks []domain.FixedBlock) []domain.FixedBlock {
	if len(blocks) == 0 {
		return nil
	}

	type groupKey struct {
		date     string
		label    string
		category domain.FixedCategory
	}
	var order []groupKey
	groups := make(map[groupKey][]domain.FixedBlock)
	for _, b := range blocks {
		k := groupKey{date: b.Start.Format(domain.DateLayout), label: b.Label, category: b.Category}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], b)
	}

	var merged []domain.FixedBlock
	for _, k := range order {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Start.Before(group[j].Start)
		})
		current := group[0]
		for _, next := range group[1:] {
			if next.Start.Sub(current.End) <= mergeGapTolerance {
				if next.End.After(current.End) {
					current.End = next.End
				}
				continue
			}
			merged = append(merged, current)
			current = next
		}
		merged = append(merged, current)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})
	return merged
}
