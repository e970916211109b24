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

// GetTasksTool handles the get_tasks MCP tool.
type GetTasksTool struct {
	client *skylight.Client
}

func NewGetTasksTool(client *skylight.Client) *GetTasksTool {
	return &GetTasksTool{client: client}
}

func (t *GetTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_tasks",
		mcp.WithDescription("Show the task box (one-off household tasks, separate from the chore chart)."),
	)
}

func (t *GetTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := t.client.GetTasks(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(tasks) == 0 {
		return mcp.NewToolResultText("The task box is empty."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d tasks:\n\n", len(tasks))
	for _, task := range tasks {
		fmt.Fprintf(&b, "- [%s] %s (%s)", task.ID, task.Attributes.Title, task.Attributes.Status)
		if task.Attributes.DueDate != "" {
			fmt.Fprintf(&b, " due %s", task.Attributes.DueDate)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// CreateTaskTool handles the create_task MCP tool.
type CreateTaskTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewCreateTaskTool(client *skylight.Client, loc *time.Location) *CreateTaskTool {
	return &CreateTaskTool{client: client, loc: loc}
}

func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Add a one-off task to the task box."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("What needs doing"),
		),
		mcp.WithString("due_date", mcp.Description("When it's due (natural language or ISO)")),
		mcp.WithString("notes", mcp.Description("Extra details")),
	)
}

func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	if title == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	dueDate := dates.ParseDate(req.GetString("due_date", ""), t.loc)

	task, err := t.client.CreateTask(ctx, title, dueDate, req.GetString("notes", ""))
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created task %q (id %s).", title, task.ID)), nil
}

// CompleteTaskTool handles the complete_task MCP tool.
type CompleteTaskTool struct {
	client *skylight.Client
}

func NewCompleteTaskTool(client *skylight.Client) *CompleteTaskTool {
	return &CompleteTaskTool{client: client}
}

func (t *CompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task-box task as done."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task"),
		),
	)
}

func (t *CompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}
	task, err := t.client.CompleteTask(ctx, taskID)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Completed task %q.", task.Attributes.Title)), nil
}

// DeleteTaskTool handles the delete_task MCP tool.
type DeleteTaskTool struct {
	client *skylight.Client
}

func NewDeleteTaskTool(client *skylight.Client) *DeleteTaskTool {
	return &DeleteTaskTool{client: client}
}

func (t *DeleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task from the task box."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task"),
		),
	)
}

func (t *DeleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}
	if err := t.client.DeleteTask(ctx, taskID); err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted task %s.", taskID)), nil
}
