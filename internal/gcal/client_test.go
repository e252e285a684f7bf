package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/alexanderramin/planwise/internal/service"
)

// fakeCalendarAPI serves the subset of the Calendar v3 REST API the client
// uses, for a single calendar.
type fakeCalendarAPI struct {
	mu        sync.Mutex
	calendars []*calendar.CalendarListEntry
	events    map[string]*calendar.Event
	nextID    int
}

func newFakeCalendarAPI(t *testing.T) (*fakeCalendarAPI, *calendar.Service) {
	t.Helper()
	api := &fakeCalendarAPI{events: make(map[string]*calendar.Event)}
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)

	srv, err := NewService(context.Background(), ts.Client(), option.WithEndpoint(ts.URL+"/"))
	require.NoError(t, err)
	return api, srv
}

func (a *fakeCalendarAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/users/me/calendarList":
		writeJSON(w, &calendar.CalendarList{Items: a.calendars})
	case len(parts) == 3 && parts[2] == "events" && r.Method == http.MethodGet:
		want := r.URL.Query().Get("privateExtendedProperty")
		key, value, _ := strings.Cut(want, "=")
		list := &calendar.Events{}
		for _, ev := range a.events {
			if ev.ExtendedProperties != nil && ev.ExtendedProperties.Private[key] == value {
				list.Items = append(list.Items, ev)
			}
		}
		writeJSON(w, list)
	case len(parts) == 3 && parts[2] == "events" && r.Method == http.MethodPost:
		var ev calendar.Event
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.nextID++
		ev.Id = fmt.Sprintf("ev%d", a.nextID)
		a.events[ev.Id] = &ev
		writeJSON(w, &ev)
	case len(parts) == 4 && r.Method == http.MethodPatch:
		existing, ok := a.events[parts[3]]
		if !ok {
			http.Error(w, `{"error":{"code":404,"message":"Not Found"}}`, http.StatusNotFound)
			return
		}
		var patch calendar.Event
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		existing.Summary = patch.Summary
		existing.Description = patch.Description
		existing.Start = patch.Start
		existing.End = patch.End
		writeJSON(w, existing)
	case len(parts) == 4 && r.Method == http.MethodDelete:
		delete(a.events, parts[3])
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (a *fakeCalendarAPI) event(id string) *calendar.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.events[id]
}

func (a *fakeCalendarAPI) put(ev *calendar.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events[ev.Id] = ev
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_RoundTrip(t *testing.T) {
	api, srv := newFakeCalendarAPI(t)
	ctx := context.Background()
	client, err := NewClient(ctx, srv, "")
	require.NoError(t, err)
	assert.Equal(t, "primary", client.CalendarID())

	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	id, err := client.Insert(ctx, service.CalendarEvent{
		BlockID: "b1",
		Summary: "Essay",
		Start:   start,
		End:     start.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	assert.Equal(t, "ev1", id)

	api.put(&calendar.Event{Id: "foreign", Summary: "Dentist"})

	synced, err := client.ListSynced(ctx)
	require.NoError(t, err)
	require.Len(t, synced, 1)
	assert.Equal(t, "b1", synced[0].BlockID)
	assert.True(t, start.Equal(synced[0].Start))

	moved := synced[0]
	moved.Start = start.Add(time.Hour)
	moved.End = moved.Start.Add(30 * time.Minute)
	require.NoError(t, client.Patch(ctx, moved))
	assert.Equal(t, moved.Start.Format(time.RFC3339), api.event("ev1").Start.DateTime)

	require.NoError(t, client.Delete(ctx, "ev1"))
	synced, err = client.ListSynced(ctx)
	require.NoError(t, err)
	assert.Empty(t, synced)
	assert.NotNil(t, api.event("foreign"), "events created elsewhere are never touched")
}

func TestNewClient_ResolvesCalendarBySummary(t *testing.T) {
	api, srv := newFakeCalendarAPI(t)
	api.mu.Lock()
	api.calendars = []*calendar.CalendarListEntry{
		{Id: "work@group.calendar.google.com", Summary: "Work"},
		{Id: "study@group.calendar.google.com", Summary: "Study"},
	}
	api.mu.Unlock()
	ctx := context.Background()

	client, err := NewClient(ctx, srv, "Study")
	require.NoError(t, err)
	assert.Equal(t, "study@group.calendar.google.com", client.CalendarID())

	_, err = NewClient(ctx, srv, "Missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `calendar "Missing" not found`)
}

func TestClient_InsertTagsEvents(t *testing.T) {
	api, srv := newFakeCalendarAPI(t)
	client, err := NewClient(context.Background(), srv, "primary")
	require.NoError(t, err)

	_, err = client.Insert(context.Background(), service.CalendarEvent{BlockID: "b1", Summary: "Essay",
		Start: time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC)})
	require.NoError(t, err)

	ev := api.event("ev1")
	require.NotNil(t, ev)
	assert.Equal(t, "1", ev.ExtendedProperties.Private[markerProperty])
	assert.Equal(t, "b1", ev.ExtendedProperties.Private[blockProperty])
}
