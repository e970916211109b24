package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/dates"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// ListEventsTool handles the list_calendar_events MCP tool.
type ListEventsTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewListEventsTool(client *skylight.Client, loc *time.Location) *ListEventsTool {
	return &ListEventsTool{client: client, loc: loc}
}

func (t *ListEventsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_calendar_events",
		mcp.WithDescription(
			"List family calendar events in a date range. Both bounds are inclusive. "+
				"Dates accept natural language (today, tomorrow, friday) or ISO YYYY-MM-DD.",
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("First day of the range (inclusive)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Last day of the range (inclusive). Defaults to start_date."),
		),
	)
}

func (t *ListEventsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := dates.ParseDate(req.GetString("start_date", ""), t.loc)
	if start == "" {
		return mcp.NewToolResultError("'start_date' is required"), nil
	}
	end := dates.ParseDate(req.GetString("end_date", ""), t.loc)
	if end == "" {
		end = start
	}

	events, err := t.client.ListCalendarEvents(ctx, start, end)
	if err != nil {
		return renderFailure(err), nil
	}

	if len(events) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No calendar events between %s and %s.", start, end)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d events between %s and %s:\n\n", len(events), start, end)
	for _, e := range events {
		summary := firstAttr(e.Attributes, "summary", "title")
		when := firstAttr(e.Attributes, "starts_at", "date")
		fmt.Fprintf(&b, "- [%s] %s", e.ID, orDash(summary))
		if when != "" {
			fmt.Fprintf(&b, " (%s)", when)
		}
		if loc := attrStr(e.Attributes, "location"); loc != "" {
			fmt.Fprintf(&b, " @ %s", loc)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// CreateEventTool handles the create_calendar_event MCP tool.
type CreateEventTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewCreateEventTool(client *skylight.Client, loc *time.Location) *CreateEventTool {
	return &CreateEventTool{client: client, loc: loc}
}

func (t *CreateEventTool) Definition() mcp.Tool {
	return mcp.NewTool("create_calendar_event",
		mcp.WithDescription("Create a calendar event on the family frame."),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Event date (natural language or ISO)"),
		),
		mcp.WithString("start_time",
			mcp.Description("Start time, e.g. 15:00 or 3:00 PM. Omit for an all-day event."),
		),
		mcp.WithString("end_time",
			mcp.Description("End time. Defaults to one hour after start_time."),
		),
		mcp.WithString("location",
			mcp.Description("Event location"),
		),
		mcp.WithString("description",
			mcp.Description("Longer event description"),
		),
	)
}

func (t *CreateEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	summary := req.GetString("summary", "")
	if summary == "" {
		return mcp.NewToolResultError("'summary' is required"), nil
	}
	date := dates.ParseDate(req.GetString("date", ""), t.loc)
	if date == "" {
		return mcp.NewToolResultError("'date' is required"), nil
	}

	startTime := dates.ParseTime(req.GetString("start_time", ""))
	endTime := dates.ParseTime(req.GetString("end_time", ""))

	params := skylight.CalendarEventParams{
		Summary:     summary,
		Description: req.GetString("description", ""),
		Location:    req.GetString("location", ""),
		Timezone:    t.loc.String(),
	}
	if startTime == "" {
		allDay := true
		params.AllDay = &allDay
		params.StartsAt = date
		params.EndsAt = date
	} else {
		if endTime == "" {
			endTime = plusOneHour(startTime)
		}
		params.StartsAt = date + "T" + startTime + ":00"
		params.EndsAt = date + "T" + endTime + ":00"
	}

	event, err := t.client.CreateCalendarEvent(ctx, params)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created event %q on %s (id %s).", summary, date, event.ID)), nil
}

// UpdateEventTool handles the update_calendar_event MCP tool.
type UpdateEventTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewUpdateEventTool(client *skylight.Client, loc *time.Location) *UpdateEventTool {
	return &UpdateEventTool{client: client, loc: loc}
}

func (t *UpdateEventTool) Definition() mcp.Tool {
	return mcp.NewTool("update_calendar_event",
		mcp.WithDescription("Update fields of an existing calendar event. Only provided fields change."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the event to update"),
		),
		mcp.WithString("summary", mcp.Description("New title")),
		mcp.WithString("date", mcp.Description("New date")),
		mcp.WithString("start_time", mcp.Description("New start time")),
		mcp.WithString("end_time", mcp.Description("New end time")),
		mcp.WithString("location", mcp.Description("New location")),
	)
}

func (t *UpdateEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID := req.GetString("event_id", "")
	if eventID == "" {
		return mcp.NewToolResultError("'event_id' is required"), nil
	}

	params := skylight.CalendarEventParams{
		Summary:  req.GetString("summary", ""),
		Location: req.GetString("location", ""),
	}

	date := dates.ParseDate(req.GetString("date", ""), t.loc)
	startTime := dates.ParseTime(req.GetString("start_time", ""))
	endTime := dates.ParseTime(req.GetString("end_time", ""))
	if date != "" && startTime != "" {
		params.StartsAt = date + "T" + startTime + ":00"
	}
	if date != "" && endTime != "" {
		params.EndsAt = date + "T" + endTime + ":00"
	}

	event, err := t.client.UpdateCalendarEvent(ctx, eventID, params)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated event %s.", event.ID)), nil
}

// DeleteEventTool handles the delete_calendar_event MCP tool.
type DeleteEventTool struct {
	client *skylight.Client
}

func NewDeleteEventTool(client *skylight.Client) *DeleteEventTool {
	return &DeleteEventTool{client: client}
}

func (t *DeleteEventTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_calendar_event",
		mcp.WithDescription("Delete a calendar event from the frame."),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the event to delete"),
		),
	)
}

func (t *DeleteEventTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	eventID := req.GetString("event_id", "")
	if eventID == "" {
		return mcp.NewToolResultError("'event_id' is required"), nil
	}
	if err := t.client.DeleteCalendarEvent(ctx, eventID); err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted event %s.", eventID)), nil
}

// plusOneHour shifts an HH:MM time forward one hour, wrapping at
// midnight.
func plusOneHour(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Add(time.Hour).Format("15:04")
}
