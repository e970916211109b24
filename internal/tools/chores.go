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

// ListChoresTool handles the list_chores MCP tool.
type ListChoresTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewListChoresTool(client *skylight.Client, loc *time.Location) *ListChoresTool {
	return &ListChoresTool{client: client, loc: loc}
}

func (t *ListChoresTool) Definition() mcp.Tool {
	return mcp.NewTool("list_chores",
		mcp.WithDescription("List chores on the chore chart, optionally filtered by date range and status."),
		mcp.WithString("start_date", mcp.Description("First day of the range (inclusive)")),
		mcp.WithString("end_date", mcp.Description("Last day of the range (inclusive)")),
		mcp.WithString("status", mcp.Description("Filter: pending or completed")),
	)
}

func (t *ListChoresTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := dates.ParseDate(req.GetString("start_date", ""), t.loc)
	end := dates.ParseDate(req.GetString("end_date", ""), t.loc)
	status := req.GetString("status", "")

	chores, err := t.client.ListChores(ctx, start, end, status)
	if err != nil {
		return renderFailure(err), nil
	}

	if len(chores) == 0 {
		return mcp.NewToolResultText("No chores found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d chores:\n\n", len(chores))
	b.WriteString("| ID | Chore | Status | Due | Points |\n")
	b.WriteString("|----|-------|--------|-----|--------|\n")
	for _, ch := range chores {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			ch.ID, ch.Attributes.Title, ch.Attributes.Status,
			orDash(ch.Attributes.DueDate), ch.Attributes.Points)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// CreateChoreTool handles the create_chore MCP tool.
type CreateChoreTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewCreateChoreTool(client *skylight.Client, loc *time.Location) *CreateChoreTool {
	return &CreateChoreTool{client: client, loc: loc}
}

func (t *CreateChoreTool) Definition() mcp.Tool {
	return mcp.NewTool("create_chore",
		mcp.WithDescription(
			"Add a chore to the chore chart. To group it under a category, pass the "+
				"category name; unknown names fail with the list of known categories.",
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What needs doing"),
		),
		mcp.WithString("due_date", mcp.Description("When it's due (natural language or ISO)")),
		mcp.WithString("assignee_id", mcp.Description("Family member ID to assign it to")),
		mcp.WithString("category", mcp.Description("Category name to file it under")),
		mcp.WithNumber("points", mcp.Description("Reward points for completing it")),
	)
}

func (t *CreateChoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}

	params := skylight.ChoreParams{
		Title:      title,
		DueDate:    dates.ParseDate(req.GetString("due_date", ""), t.loc),
		AssigneeID: req.GetString("assignee_id", ""),
		Points:     intArg(req, "points", 0),
	}

	if name := req.GetString("category", ""); name != "" {
		cat, err := t.client.FindCategoryByName(ctx, name)
		if err != nil {
			return renderFailure(err), nil
		}
		params.CategoryID = cat.ID
	}

	chore, err := t.client.CreateChore(ctx, params)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created chore %q (id %s).", title, chore.ID)), nil
}

// CompleteChoreTool handles the complete_chore MCP tool.
type CompleteChoreTool struct {
	client *skylight.Client
}

func NewCompleteChoreTool(client *skylight.Client) *CompleteChoreTool {
	return &CompleteChoreTool{client: client}
}

func (t *CompleteChoreTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_chore",
		mcp.WithDescription("Mark a chore as completed."),
		mcp.WithString("chore_id",
			mcp.Required(),
			mcp.Description("ID of the chore"),
		),
	)
}

func (t *CompleteChoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	choreID := req.GetString("chore_id", "")
	if choreID == "" {
		return mcp.NewToolResultError("'chore_id' is required"), nil
	}
	chore, err := t.client.CompleteChore(ctx, choreID)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Completed chore %q.", chore.Attributes.Title)), nil
}

// DeleteChoreTool handles the delete_chore MCP tool.
type DeleteChoreTool struct {
	client *skylight.Client
}

func NewDeleteChoreTool(client *skylight.Client) *DeleteChoreTool {
	return &DeleteChoreTool{client: client}
}

func (t *DeleteChoreTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_chore",
		mcp.WithDescription("Delete a chore from the chart."),
		mcp.WithString("chore_id",
			mcp.Required(),
			mcp.Description("ID of the chore"),
		),
	)
}

func (t *DeleteChoreTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	choreID := req.GetString("chore_id", "")
	if choreID == "" {
		return mcp.NewToolResultError("'chore_id' is required"), nil
	}
	if err := t.client.DeleteChore(ctx, choreID); err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted chore %s.", choreID)), nil
}
