package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// GetFamilyMembersTool handles the get_family_members MCP tool.
type GetFamilyMembersTool struct {
	client *skylight.Client
}

func NewGetFamilyMembersTool(client *skylight.Client) *GetFamilyMembersTool {
	return &GetFamilyMembersTool{client: client}
}

func (t *GetFamilyMembersTool) Definition() mcp.Tool {
	return mcp.NewTool("get_family_members",
		mcp.WithDescription("Show everyone on the frame and their IDs, for assigning chores and tasks."),
	)
}

func (t *GetFamilyMembersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	members, err := t.client.GetFamilyMembers(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(members) == 0 {
		return mcp.NewToolResultText("No family members on this frame."), nil
	}

	var b strings.Builder
	for _, m := range members {
		fmt.Fprintf(&b, "- [%s] %s", m.ID, m.Attributes.Name)
		if m.Attributes.Role != "" {
			fmt.Fprintf(&b, " (%s)", m.Attributes.Role)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// GetCategoriesTool handles the get_categories MCP tool.
type GetCategoriesTool struct {
	client *skylight.Client
}

func NewGetCategoriesTool(client *skylight.Client) *GetCategoriesTool {
	return &GetCategoriesTool{client: client}
}

func (t *GetCategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_categories",
		mcp.WithDescription("Show the frame's categories (used to group chores and events)."),
	)
}

func (t *GetCategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats, err := t.client.GetCategories(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(cats) == 0 {
		return mcp.NewToolResultText("No categories on this frame."), nil
	}

	var b strings.Builder
	for _, cat := range cats {
		fmt.Fprintf(&b, "- [%s] %s", cat.ID, cat.Attributes.Label)
		if cat.Attributes.Color != "" {
			fmt.Fprintf(&b, " (%s)", cat.Attributes.Color)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}
