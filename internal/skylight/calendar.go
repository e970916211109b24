package skylight

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// CalendarEvent has an open attribute bag: the event schema varies by
// event source (Skylight-native, Google sync, school feeds) and is not
// part of any documented contract.
type CalendarEvent struct {
	ID         string
	Attributes map[string]any
}

// CalendarEventParams is the flat request body for creating or updating
// an event. Omitted fields are left untouched on update.
type CalendarEventParams struct {
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	StartsAt    string `json:"starts_at,omitempty"`
	EndsAt      string `json:"ends_at,omitempty"`
	AllDay      *bool  `json:"all_day,omitempty"`
	Location    string `json:"location,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

// ListCalendarEvents returns events between dateMin and dateMax, both
// inclusive ISO dates. The server treats date_max as exclusive, so the
// bound sent upstream is dateMax plus one day; without that, events on
// the end date itself would be silently dropped.
func (c *Client) ListCalendarEvents(ctx context.Context, dateMin, dateMax string) ([]CalendarEvent, error) {
	q := url.Values{}
	param(q, "date_min", dateMin)
	param(q, "date_max", nextDay(dateMax))

	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/calendar_events", q, nil)
	if err != nil {
		return nil, err
	}

	var doc documentList
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	events := make([]CalendarEvent, 0, len(doc.Data))
	for _, r := range doc.Data {
		events = append(events, CalendarEvent{ID: r.ID, Attributes: r.Attributes})
	}
	return events, nil
}

// CreateCalendarEvent creates an event from flat fields.
func (c *Client) CreateCalendarEvent(ctx context.Context, params CalendarEventParams) (*CalendarEvent, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/calendar_events", nil, params)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &CalendarEvent{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// UpdateCalendarEvent applies flat field updates to an existing event.
func (c *Client) UpdateCalendarEvent(ctx context.Context, eventID string, params CalendarEventParams) (*CalendarEvent, error) {
	data, err := c.do(ctx, http.MethodPut, "/api/frames/{frame}/calendar_events/"+url.PathEscape(eventID), nil, params)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &CalendarEvent{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// DeleteCalendarEvent removes an event.
func (c *Client) DeleteCalendarEvent(ctx context.Context, eventID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/frames/{frame}/calendar_events/"+url.PathEscape(eventID), nil, nil)
	return err
}

// nextDay returns the ISO date one day after d. Anything that doesn't
// parse as an ISO date is passed through unchanged and left for the
// server to interpret.
func nextDay(d string) string {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return d
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}
