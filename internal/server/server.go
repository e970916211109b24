// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it loads the configuration, builds the
// Skylight API client, and injects it into every tool. No business
// logic lives here, only wiring.
package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mwhite/skylight-mcp/internal/config"
	"github.com/mwhite/skylight-mcp/internal/skylight"
	"github.com/mwhite/skylight-mcp/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// tool is the shape every handler in internal/tools exposes.
type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New loads the environment configuration and returns a fully wired MCP
// server. A configuration problem is returned as an error so the
// command layer can print the diagnostic and exit.
func New() (*server.MCPServer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := skylight.New(cfg)

	s := server.NewMCPServer(
		"skylight",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	loc := cfg.Location

	register(s,
		// Calendar
		tools.NewListEventsTool(client, loc),
		tools.NewCreateEventTool(client, loc),
		tools.NewUpdateEventTool(client, loc),
		tools.NewDeleteEventTool(client),

		// Chores
		tools.NewListChoresTool(client, loc),
		tools.NewCreateChoreTool(client, loc),
		tools.NewCompleteChoreTool(client),
		tools.NewDeleteChoreTool(client),

		// Lists
		tools.NewGetListsTool(client),
		tools.NewGetListItemsTool(client),
		tools.NewAddListItemTool(client),
		tools.NewUpdateListItemTool(client),
		tools.NewDeleteListItemTool(client),

		// Task box
		tools.NewGetTasksTool(client),
		tools.NewCreateTaskTool(client, loc),
		tools.NewCompleteTaskTool(client),
		tools.NewDeleteTaskTool(client),

		// Rewards
		tools.NewGetRewardsTool(client),
		tools.NewCreateRewardTool(client),
		tools.NewUpdateRewardPointsTool(client),

		// Meals
		tools.NewGetMealPlanTool(client, loc),
		tools.NewGetMealCategoriesTool(client),
		tools.NewListRecipesTool(client),
		tools.NewCreateRecipeTool(client),
		tools.NewScheduleMealTool(client, loc),
		tools.NewDeleteMealSittingTool(client),

		// Family
		tools.NewGetFamilyMembersTool(client),
		tools.NewGetCategoriesTool(client),

		// Frame and photos
		tools.NewGetFrameInfoTool(client),
		tools.NewListDevicesTool(client),
		tools.NewListPhotosTool(client),
		tools.NewUploadPhotoTool(client),
	)

	return s, nil
}

func register(s *server.MCPServer, ts ...tool) {
	for _, t := range ts {
		s.AddTool(t.Definition(), t.Handle)
	}
}

// serverInstructions returns the system instructions that tell the AI
// how to use the Skylight tools effectively.
func serverInstructions() string {
	return fmt.Sprintf(`You have access to a Skylight family frame: a shared
calendar, chore chart, lists, task box, rewards, and meal planner.

## General guidance
- Dates accept natural language ("today", "tomorrow", "friday", "6/15")
  or ISO format (2025-06-15). Times accept "3 PM", "9:30 AM", or "15:00".
- Weekday names always mean the NEXT occurrence of that weekday, never today.
- IDs come from the list tools. When the user refers to an item by name,
  call the matching list tool first to resolve the ID.
- Category names for chores are matched case-insensitively. If a name
  doesn't match, the error lists the categories that exist.

## Typical flows
- "What's on the calendar this week?" -> list_events with the date range.
- "Add 'take out trash' for Leo on Mondays" -> get_family_members for
  Leo's ID, get_categories if a category is mentioned, then create_chore.
- "Put tacos on the plan for Friday" -> get_meal_categories for the
  dinner slot ID, then schedule_meal with name "Tacos".
- "Mark the milk as bought" -> get_lists, get_list_items to find the
  item, then update_list_item with completed=true.

## Errors
Tool failures include remediation guidance. Rate-limit failures say how
long to wait; retrying after that is safe. Authentication failures mean
the configured credentials need attention, not that the request was wrong.

Server version: %s`, Version)
}
