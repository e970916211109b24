package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// GetListsTool handles the get_lists MCP tool.
type GetListsTool struct {
	client *skylight.Client
}

func NewGetListsTool(client *skylight.Client) *GetListsTool {
	return &GetListsTool{client: client}
}

func (t *GetListsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_lists",
		mcp.WithDescription("Show all lists on the frame (shopping, to-do, packing, ...)."),
	)
}

func (t *GetListsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	lists, err := t.client.GetLists(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(lists) == 0 {
		return mcp.NewToolResultText("No lists on this frame."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d lists:\n\n", len(lists))
	for _, l := range lists {
		fmt.Fprintf(&b, "- [%s] %s", l.ID, l.Attributes.Name)
		if l.Attributes.Kind != "" {
			fmt.Fprintf(&b, " (%s)", l.Attributes.Kind)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// GetListItemsTool handles the get_list_items MCP tool.
type GetListItemsTool struct {
	client *skylight.Client
}

func NewGetListItemsTool(client *skylight.Client) *GetListItemsTool {
	return &GetListItemsTool{client: client}
}

func (t *GetListItemsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_list_items",
		mcp.WithDescription("Show the items on one list."),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("ID of the list (see get_lists)"),
		),
	)
}

func (t *GetListItemsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID := req.GetString("list_id", "")
	if listID == "" {
		return mcp.NewToolResultError("'list_id' is required"), nil
	}

	items, err := t.client.GetListItems(ctx, listID)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("This list is empty."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d items:\n\n", len(items))
	for _, item := range items {
		marker := "[ ]"
		if item.Attributes.Completed {
			marker = "[x]"
		}
		fmt.Fprintf(&b, "- %s %s (id %s)\n", marker, item.Attributes.Label, item.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// AddListItemTool handles the add_list_item MCP tool.
type AddListItemTool struct {
	client *skylight.Client
}

func NewAddListItemTool(client *skylight.Client) *AddListItemTool {
	return &AddListItemTool{client: client}
}

func (t *AddListItemTool) Definition() mcp.Tool {
	return mcp.NewTool("add_list_item",
		mcp.WithDescription("Add an item to a list."),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("ID of the list"),
		),
		mcp.WithString("label",
			mcp.Required(),
			mcp.Description("Item text, e.g. 'oat milk'"),
		),
	)
}

func (t *AddListItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID := req.GetString("list_id", "")
	label := req.GetString("label", "")
	if listID == "" || label == "" {
		return mcp.NewToolResultError("'list_id' and 'label' are required"), nil
	}

	item, err := t.client.AddListItem(ctx, listID, label)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %q (id %s).", label, item.ID)), nil
}

// UpdateListItemTool handles the update_list_item MCP tool.
type UpdateListItemTool struct {
	client *skylight.Client
}

func NewUpdateListItemTool(client *skylight.Client) *UpdateListItemTool {
	return &UpdateListItemTool{client: client}
}

func (t *UpdateListItemTool) Definition() mcp.Tool {
	return mcp.NewTool("update_list_item",
		mcp.WithDescription("Rename a list item and/or check it off. Only provided fields change."),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("ID of the list"),
		),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("ID of the item"),
		),
		mcp.WithString("label", mcp.Description("New item text")),
		mcp.WithBoolean("completed", mcp.Description("true to check off, false to un-check")),
	)
}

func (t *UpdateListItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID := req.GetString("list_id", "")
	itemID := req.GetString("item_id", "")
	if listID == "" || itemID == "" {
		return mcp.NewToolResultError("'list_id' and 'item_id' are required"), nil
	}

	var update skylight.ListItemUpdate
	if label := req.GetString("label", ""); label != "" {
		update.Label = &label
	}
	if _, present := req.GetArguments()["completed"]; present {
		completed := boolArg(req, "completed", false)
		update.Completed = &completed
	}
	if update.Label == nil && update.Completed == nil {
		return mcp.NewToolResultError("nothing to update; provide 'label' and/or 'completed'"), nil
	}

	item, err := t.client.UpdateListItem(ctx, listID, itemID, update)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated item %s.", item.ID)), nil
}

// DeleteListItemTool handles the delete_list_item MCP tool.
type DeleteListItemTool struct {
	client *skylight.Client
}

func NewDeleteListItemTool(client *skylight.Client) *DeleteListItemTool {
	return &DeleteListItemTool{client: client}
}

func (t *DeleteListItemTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_list_item",
		mcp.WithDescription("Remove an item from a list."),
		mcp.WithString("list_id",
			mcp.Required(),
			mcp.Description("ID of the list"),
		),
		mcp.WithString("item_id",
			mcp.Required(),
			mcp.Description("ID of the item"),
		),
	)
}

func (t *DeleteListItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	listID := req.GetString("list_id", "")
	itemID := req.GetString("item_id", "")
	if listID == "" || itemID == "" {
		return mcp.NewToolResultError("'list_id' and 'item_id' are required"), nil
	}
	if err := t.client.DeleteListItem(ctx, listID, itemID); err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted item %s.", itemID)), nil
}
