// Package gcal pushes schedule blocks to Google Calendar.
package gcal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/alexanderramin/planwise/internal/service"
)

const (
	// Every synced event carries both private properties. The marker makes
	// the events listable with a single filter.
	markerProperty = "planwise"
	blockProperty  = "planwise_block"

	primaryCalendar = "primary"
)

// Client implements service.CalendarGateway against one Google calendar.
type Client struct {
	srv        *calendar.Service
	calendarID string
}

var _ service.CalendarGateway = (*Client)(nil)

// NewService builds a Calendar API service over an authorized client.
func NewService(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*calendar.Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return srv, nil
}

// NewClient resolves calendarName to a calendar ID. "primary" and empty
// names use the account's primary calendar; anything else must match the
// summary of a calendar in the user's list.
func NewClient(ctx context.Context, srv *calendar.Service, calendarName string) (*Client, error) {
	if calendarName == "" || calendarName == primaryCalendar {
		return &Client{srv: srv, calendarID: primaryCalendar}, nil
	}

	var calendarID string
	err := srv.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		for _, item := range page.Items {
			if calendarID == "" && (item.Summary == calendarName || item.Id == calendarName) {
				calendarID = item.Id
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing calendars: %w", err)
	}
	if calendarID == "" {
		return nil, fmt.Errorf("calendar %q not found", calendarName)
	}
	return &Client{srv: srv, calendarID: calendarID}, nil
}

func (c *Client) CalendarID() string { return c.calendarID }

func (c *Client) ListSynced(ctx context.Context) ([]service.CalendarEvent, error) {
	var out []service.CalendarEvent
	call := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(markerProperty + "=1").
		ShowDeleted(false)
	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, err := fromAPI(item)
			if err != nil {
				return err
			}
			out = append(out, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return out, nil
}

func (c *Client) Insert(ctx context.Context, ev service.CalendarEvent) (string, error) {
	created, err := c.srv.Events.Insert(c.calendarID, toAPI(ev)).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return created.Id, nil
}

func (c *Client) Patch(ctx context.Context, ev service.CalendarEvent) error {
	_, err := c.srv.Events.Patch(c.calendarID, ev.ID, toAPI(ev)).Context(ctx).Do()
	return err
}

func (c *Client) Delete(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

func toAPI(ev service.CalendarEvent) *calendar.Event {
	return &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start:       &calendar.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: ev.End.Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				markerProperty: "1",
				blockProperty:  ev.BlockID,
			},
		},
	}
}

func fromAPI(item *calendar.Event) (service.CalendarEvent, error) {
	ev := service.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
	}
	if item.ExtendedProperties != nil {
		ev.BlockID = item.ExtendedProperties.Private[blockProperty]
	}
	var err error
	if ev.Start, err = parseDateTime(item.Start); err != nil {
		return ev, fmt.Errorf("event %s start: %w", item.Id, err)
	}
	if ev.End, err = parseDateTime(item.End); err != nil {
		return ev, fmt.Errorf("event %s end: %w", item.Id, err)
	}
	return ev, nil
}

// parseDateTime reads a timed event boundary. All-day boundaries have no
// time and decode as midnight UTC.
func parseDateTime(dt *calendar.EventDateTime) (time.Time, error) {
	if dt == nil {
		return time.Time{}, nil
	}
	if dt.DateTime != "" {
		return time.Parse(time.RFC3339, dt.DateTime)
	}
	if dt.Date != "" {
		return time.Parse("2006-01-02", dt.Date)
	}
	return time.Time{}, nil
}
