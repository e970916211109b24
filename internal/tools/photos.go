package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// ListPhotosTool handles the list_photos MCP tool.
type ListPhotosTool struct {
	client *skylight.Client
}

func NewListPhotosTool(client *skylight.Client) *ListPhotosTool {
	return &ListPhotosTool{client: client}
}

func (t *ListPhotosTool) Definition() mcp.Tool {
	return mcp.NewTool("list_photos",
		mcp.WithDescription("Show the photos currently in the frame's rotation."),
	)
}

func (t *ListPhotosTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	photos, err := t.client.ListPhotos(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(photos) == 0 {
		return mcp.NewToolResultText("No photos on this frame."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d photos:\n\n", len(photos))
	for _, p := range photos {
		fmt.Fprintf(&b, "- [%s] %s\n", p.ID, orDash(firstAttr(p.Attributes, "caption", "filename", "name")))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// UploadPhotoTool handles the upload_photo_from_url MCP tool.
type UploadPhotoTool struct {
	client *skylight.Client
}

func NewUploadPhotoTool(client *skylight.Client) *UploadPhotoTool {
	return &UploadPhotoTool{client: client}
}

func (t *UploadPhotoTool) Definition() mcp.Tool {
	return mcp.NewTool("upload_photo_from_url",
		mcp.WithDescription("Add a photo to the frame by URL. The server fetches the image itself."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Publicly reachable image URL"),
		),
		mcp.WithString("caption", mcp.Description("Optional caption")),
	)
}

func (t *UploadPhotoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sourceURL := req.GetString("url", "")
	if sourceURL == "" {
		return mcp.NewToolResultError("'url' is required"), nil
	}

	photo, err := t.client.UploadPhotoFromURL(ctx, sourceURL, req.GetString("caption", ""))
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added photo %s to the frame.", photo.ID)), nil
}
