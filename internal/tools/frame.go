package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// GetFrameInfoTool handles the get_frame_info MCP tool.
type GetFrameInfoTool struct {
	client *skylight.Client
}

func NewGetFrameInfoTool(client *skylight.Client) *GetFrameInfoTool {
	return &GetFrameInfoTool{client: client}
}

func (t *GetFrameInfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_frame_info",
		mcp.WithDescription("Show the frame itself: name, settings, and plan."),
	)
}

func (t *GetFrameInfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := t.client.GetFrameInfo(ctx)
	if err != nil {
		return renderFailure(err), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Frame %s\n", info.ID)
	writeAttributes(&b, info.Attributes)
	return mcp.NewToolResultText(b.String()), nil
}

// ListDevicesTool handles the list_devices MCP tool.
type ListDevicesTool struct {
	client *skylight.Client
}

func NewListDevicesTool(client *skylight.Client) *ListDevicesTool {
	return &ListDevicesTool{client: client}
}

func (t *ListDevicesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_devices",
		mcp.WithDescription("Show the physical devices paired to the frame."),
	)
}

func (t *ListDevicesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := t.client.ListDevices(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(devices) == 0 {
		return mcp.NewToolResultText("No devices paired to this frame."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d devices:\n\n", len(devices))
	for _, d := range devices {
		fmt.Fprintf(&b, "- [%s] %s\n", d.ID, orDash(firstAttr(d.Attributes, "name", "device_name", "kind")))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// writeAttributes renders an open attribute bag as sorted key: value
// lines, skipping nested structures.
func writeAttributes(b *strings.Builder, attrs map[string]any) {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := attrs[k].(type) {
		case map[string]any, []any:
			continue
		default:
			fmt.Fprintf(b, "- %s: %v\n", k, v)
		}
	}
}
