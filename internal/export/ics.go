// Package export renders a stored schedule as an iCalendar file or an Excel
// workbook.
package export

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/alexanderramin/planwise/internal/domain"
)

const productID = "-//PlanWise//Schedule//EN"

// WriteICS writes one VEVENT per task block and per fixed block. Event UIDs
// are derived from block IDs so re-importing the file into a calendar
// updates events instead of duplicating them.
func WriteICS(w io.Writer, blocks []domain.ScheduleBlock, fixed []domain.FixedBlock, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetName("PlanWise")

	for _, b := range blocks {
		ev := cal.AddEvent(fmt.Sprintf("task-%s@planwise", b.ID))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(b.Start)
		ev.SetEndAt(b.End)
		ev.SetSummary(b.TaskName)
		ev.SetDescription(fmt.Sprintf("Priority: %s\nCategory: %s", b.Priority, b.Category))
		ev.SetProperty(ics.ComponentPropertyCategories, b.Category)
	}
	for _, f := range fixed {
		ev := cal.AddEvent(fmt.Sprintf("fixed-%s@planwise", f.ID))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(f.Start)
		ev.SetEndAt(f.End)
		ev.SetSummary(f.Label)
		ev.SetProperty(ics.ComponentPropertyCategories, string(f.Category))
		ev.SetProperty(ics.ComponentPropertyTransp, "OPAQUE")
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
