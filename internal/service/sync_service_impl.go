package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/planwise/internal/domain"
	"github.com/alexanderramin/planwise/internal/repository"
)

// CalendarEvent is a schedule block as an external calendar sees it.
// BlockID links the event back to the block it was created from.
type CalendarEvent struct {
	ID          string
	BlockID     string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// CalendarGateway is an external calendar that PlanWise pushes blocks to.
type CalendarGateway interface {
	// ListSynced returns the events previously created by PlanWise.
	ListSynced(ctx context.Context) ([]CalendarEvent, error)
	Insert(ctx context.Context, ev CalendarEvent) (string, error)
	Patch(ctx context.Context, ev CalendarEvent) error
	Delete(ctx context.Context, eventID string) error
}

type syncService struct {
	schedule repository.ScheduleRepo
	observer UseCaseObserver
}

func NewSyncService(schedule repository.ScheduleRepo, observers ...UseCaseObserver) SyncService {
	return &syncService{schedule: schedule, observer: useCaseObserverOrNoop(observers)}
}

// Sync makes the calendar mirror the stored schedule. Events for blocks that
// no longer exist are deleted, changed blocks are patched and new blocks are
// inserted. When two events point at the same block the extra one is deleted.
func (s *syncService) Sync(ctx context.Context, cal CalendarGateway) (res *SyncResult, err error) {
	startedAt := time.Now()
	res = &SyncResult{}
	fields := map[string]any{}
	defer observe(ctx, s.observer, "calendar.sync", startedAt, fields, &err)

	blocks, err := s.schedule.ListBlocks(ctx)
	if err != nil {
		return nil, err
	}
	want := make(map[string]CalendarEvent, len(blocks))
	for _, b := range blocks {
		want[b.ID] = eventForBlock(b)
	}

	existing, err := cal.ListSynced(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing calendar events: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, ev := range existing {
		target, ok := want[ev.BlockID]
		if !ok || seen[ev.BlockID] {
			if err := cal.Delete(ctx, ev.ID); err != nil {
				return nil, fmt.Errorf("deleting event %s: %w", ev.ID, err)
			}
			res.Deleted++
			continue
		}
		seen[ev.BlockID] = true
		if sameEvent(ev, target) {
			continue
		}
		target.ID = ev.ID
		if err := cal.Patch(ctx, target); err != nil {
			return nil, fmt.Errorf("updating event for %s: %w", target.Summary, err)
		}
		res.Updated++
	}

	var missing []CalendarEvent
	for id, ev := range want {
		if !seen[id] {
			missing = append(missing, ev)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Start.Before(missing[j].Start) })
	for _, ev := range missing {
		if _, err := cal.Insert(ctx, ev); err != nil {
			return nil, fmt.Errorf("creating event for %s: %w", ev.Summary, err)
		}
		res.Inserted++
	}

	fields["inserted"] = res.Inserted
	fields["updated"] = res.Updated
	fields["deleted"] = res.Deleted
	return res, nil
}

func eventForBlock(b domain.ScheduleBlock) CalendarEvent {
	return CalendarEvent{
		BlockID:     b.ID,
		Summary:     b.TaskName,
		Description: fmt.Sprintf("Priority: %s\nCategory: %s", b.Priority, b.Category),
		Start:       b.Start,
		End:         b.End,
	}
}

func sameEvent(a, b CalendarEvent) bool {
	return a.Summary == b.Summary &&
		a.Description == b.Description &&
		a.Start.Equal(b.Start) &&
		a.End.Equal(b.End)
}
