// Package tools implements the MCP tool handlers for the Skylight
// frame: calendar, chores, lists, task box, rewards, meals, family,
// frame info, and photos.
//
// Each tool is a struct that receives the API client via its
// constructor and exposes a Definition for registration plus a Handle
// compatible with mcp-go's CallToolRequest signature. Failures from the
// client are never propagated as errors past this boundary; they are
// rendered as error-flagged text with remediation guidance so the
// protocol transport always gets a well-formed result.
package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// renderFailure converts a classified client failure into error-flagged
// text. This is the only place failure kinds become user-facing words;
// the guidance is specific to the kind so the model can act on it.
func renderFailure(err error) *mcp.CallToolResult {
	var b strings.Builder

	var authErr *skylight.AuthError
	var nfErr *skylight.NotFoundError
	var rlErr *skylight.RateLimitError
	var apiErr *skylight.APIError
	var parseErr *skylight.ParseError

	switch {
	case errors.As(err, &authErr):
		fmt.Fprintf(&b, "Authentication failed: %s\n\n", authErr.Message)
		b.WriteString("Check the configured credentials. In login mode also verify SKYLIGHT_FRAME_ID belongs to this account.")

	case errors.As(err, &rlErr):
		b.WriteString("The Skylight API is rate limiting requests. ")
		if rlErr.RetryAfter > 0 {
			fmt.Fprintf(&b, "Wait %d seconds before trying again.", rlErr.RetryAfter)
		} else {
			b.WriteString("Wait a bit before trying again.")
		}

	case errors.As(err, &nfErr):
		fmt.Fprintf(&b, "Not found: %s\n\n", nfErr.Message)
		b.WriteString("The identifier may be wrong, the item may have been deleted, or SKYLIGHT_FRAME_ID may point at a different frame.")

	case errors.As(err, &parseErr):
		fmt.Fprintf(&b, "Skylight returned a response this server couldn't interpret: %v\n\n", parseErr)
		b.WriteString("This usually means the API changed shape. Please report it.")

	case errors.As(err, &apiErr):
		fmt.Fprintf(&b, "Skylight API error: %v\n\n", apiErr)
		if skylight.Recoverable(err) {
			b.WriteString("This looks like transient server trouble; retrying the operation is safe.")
		} else {
			b.WriteString("The request was rejected; check the parameters.")
		}

	default:
		fmt.Fprintf(&b, "Request failed: %v", err)
	}

	return mcp.NewToolResultError(b.String())
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// attrStr fetches a string attribute from an open attribute bag.
func attrStr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

// firstAttr returns the first non-empty string among the given keys.
func firstAttr(attrs map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := attrStr(attrs, key); v != "" {
			return v
		}
	}
	return ""
}

// orDash substitutes a placeholder for empty table cells.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
