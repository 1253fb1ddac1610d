package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/halcyon-labs/assistant-mcp/internal/adapter/outbound/googleapi"
	"github.com/halcyon-labs/assistant-mcp/internal/domain"
)

// blockSeparator closes each event/email block in list output.
var blockSeparator = strings.Repeat("─", 50)

// CalendarToolSet provides the Google Calendar tools.
type CalendarToolSet struct {
	client *googleapi.Client
	logger *slog.Logger
}

// NewCalendarToolSet creates the calendar tool set.
func NewCalendarToolSet(client *googleapi.Client, logger *slog.Logger) *CalendarToolSet {
	return &CalendarToolSet{
		client: client,
		logger: logger.With("toolset", "calendar"),
	}
}

// Register adds the calendar tools to the registry, in catalog order.
func (s *CalendarToolSet) Register(r *domain.Registry) {
	r.Register(mcp.NewTool("list_calendar_events",
		mcp.WithDescription("List upcoming Google Calendar events"),
		mcp.WithNumber("maxResults",
			mcp.Description("Maximum number of events to return"),
			mcp.DefaultNumber(10),
		),
	), s.ListEvents)

	r.Register(mcp.NewTool("create_calendar_events",
		mcp.WithDescription("Create a Google Calendar event"),
		mcp.WithString("summary", mcp.Required(), mcp.Description("Event title")),
		mcp.WithObject("start", mcp.Required(), mcp.Description("Start time object (dateTime or date)")),
		mcp.WithObject("end", mcp.Required(), mcp.Description("End time object (dateTime or date)")),
	), s.CreateEvent)

	r.Register(mcp.NewTool("update_calendar_events",
		mcp.WithDescription("Update a Google Calendar event"),
		mcp.WithString("eventId", mcp.Required(), mcp.Description("ID of the event to update")),
		mcp.WithString("summary", mcp.Description("Event title")),
		mcp.WithObject("start", mcp.Description("Start time object (dateTime or date)")),
		mcp.WithObject("end", mcp.Description("End time object (dateTime or date)")),
	), s.UpdateEvent)

	r.Register(mcp.NewTool("delete_calendar_events",
		mcp.WithDescription("Delete a Google Calendar event"),
		mcp.WithString("eventId", mcp.Required(), mcp.Description("ID of the event to delete")),
	), s.DeleteEvent)
}

// ListEvents handles the list_calendar_events tool.
func (s *CalendarToolSet) ListEvents(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	maxResults := intArg(args, "maxResults", 10)

	events, err := s.client.ListEvents(ctx, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err))
	}
	if len(events) == 0 {
		return mcp.NewToolResultText("No calendar events found.")
	}

	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, fmt.Sprintf("📅 %s\nStart: %s\nID: %s\n%s",
			valueOr(ev.Summary, "No Title"), ev.Start.Display(), valueOr(ev.ID, "No ID"), blockSeparator))
	}
	return mcp.NewToolResultText(strings.Join(blocks, "\n"))
}

// CreateEvent handles the create_calendar_events tool. Arguments are
// forwarded verbatim as the event body; the remote API validates field
// presence.
func (s *CalendarToolSet) CreateEvent(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	event, err := s.client.CreateEvent(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error creating event: %v", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Successfully created event: %s\nEvent ID: %s",
		valueOr(event.Summary, "No Title"), valueOr(event.ID, "No ID")))
}

// UpdateEvent handles the update_calendar_events tool.
func (s *CalendarToolSet) UpdateEvent(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	eventID := stringArg(args, "eventId")
	if eventID == "" {
		return mcp.NewToolResultError("Error: Event ID is required")
	}

	event, err := s.client.UpdateEvent(ctx, eventID, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error updating event: %v", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Successfully updated event: %s", valueOr(event.Summary, "No Title")))
}

// DeleteEvent handles the delete_calendar_events tool.
func (s *CalendarToolSet) DeleteEvent(ctx context.Context, args map[string]interface{}) *mcp.CallToolResult {
	eventID := stringArg(args, "eventId")
	if eventID == "" {
		return mcp.NewToolResultError("Error: Event ID is required")
	}

	if err := s.client.DeleteEvent(ctx, eventID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("❌ Error deleting event: %v", err))
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Successfully deleted event: %s", eventID))
}
