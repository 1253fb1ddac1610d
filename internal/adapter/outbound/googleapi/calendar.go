package googleapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// EventTime is a calendar event boundary: either a timed dateTime or an
// all-day date.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Display renders the boundary for tool output.
func (t EventTime) Display() string {
	switch {
	case t.DateTime != "":
		return t.DateTime
	case t.Date != "":
		return t.Date
	default:
		return "No start time"
	}
}

// Event is the subset of the calendar event resource the tools report.
type Event struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   EventTime `json:"start"`
}

// ListEvents returns up to maxResults events from the primary calendar.
func (c *Client) ListEvents(ctx context.Context, maxResults int) ([]Event, error) {
	u := fmt.Sprintf("%s/calendars/primary/events?maxResults=%d", c.calendarURL, maxResults)

	var result struct {
		Items []Event `json:"items"`
	}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// CreateEvent inserts an event into the primary calendar. The body is passed
// through verbatim so callers control the full event resource.
func (c *Client) CreateEvent(ctx context.Context, body map[string]interface{}) (*Event, error) {
	var event Event
	if err := c.doJSON(ctx, http.MethodPost, c.calendarURL+"/calendars/primary/events", body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent replaces the event identified by eventID on the primary calendar.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, body map[string]interface{}) (*Event, error) {
	u := c.calendarURL + "/calendars/primary/events/" + url.PathEscape(eventID)

	var event Event
	if err := c.doJSON(ctx, http.MethodPut, u, body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes the event identified by eventID from the primary calendar.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	u := c.calendarURL + "/calendars/primary/events/" + url.PathEscape(eventID)
	return c.doJSON(ctx, http.MethodDelete, u, nil, nil)
}
