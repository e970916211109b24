package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mwhite/skylight-mcp/internal/skylight"
)

// GetRewardsTool handles the get_rewards MCP tool. It combines the
// reward catalog with each member's point balance in one response.
type GetRewardsTool struct {
	client *skylight.Client
}

func NewGetRewardsTool(client *skylight.Client) *GetRewardsTool {
	return &GetRewardsTool{client: client}
}

func (t *GetRewardsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_rewards",
		mcp.WithDescription("Show the reward catalog and every family member's point balance."),
	)
}

func (t *GetRewardsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rewards, err := t.client.GetRewards(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	profiles, err := t.client.GetRewardProfiles(ctx)
	if err != nil {
		return renderFailure(err), nil
	}

	var b strings.Builder
	b.WriteString("## Point balances\n\n")
	if len(profiles) == 0 {
		b.WriteString("No reward profiles yet.\n")
	}
	for _, p := range profiles {
		fmt.Fprintf(&b, "- %s: %d points (profile %s)\n", p.Attributes.Name, p.Attributes.Points, p.ID)
	}

	b.WriteString("\n## Rewards\n\n")
	if len(rewards) == 0 {
		b.WriteString("No rewards configured.\n")
	}
	for _, r := range rewards {
		fmt.Fprintf(&b, "- [%s] %s: %d points\n", r.ID, r.Attributes.Title, r.Attributes.Points)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// CreateRewardTool handles the create_reward MCP tool.
type CreateRewardTool struct {
	client *skylight.Client
}

func NewCreateRewardTool(client *skylight.Client) *CreateRewardTool {
	return &CreateRewardTool{client: client}
}

func (t *CreateRewardTool) Definition() mcp.Tool {
	return mcp.NewTool("create_reward",
		mcp.WithDescription("Add a reward family members can redeem points for."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Reward name, e.g. 'Movie night'"),
		),
		mcp.WithNumber("points",
			mcp.Required(),
			mcp.Description("Point cost"),
		),
		mcp.WithString("description", mcp.Description("Details shown on the frame")),
		mcp.WithString("category", mcp.Description("Category name to associate the reward with")),
	)
}

func (t *CreateRewardTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := req.GetString("title", "")
	points := intArg(req, "points", 0)
	if title == "" || points <= 0 {
		return mcp.NewToolResultError("'title' and a positive 'points' value are required"), nil
	}

	params := skylight.RewardParams{
		Title:       title,
		Description: req.GetString("description", ""),
		Points:      points,
	}
	if name := req.GetString("category", ""); name != "" {
		cat, err := t.client.FindCategoryByName(ctx, name)
		if err != nil {
			return renderFailure(err), nil
		}
		params.CategoryIDs = []string{cat.ID}
	}

	reward, err := t.client.CreateReward(ctx, params)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created reward %q for %d points (id %s).", title, points, reward.ID)), nil
}

// UpdateRewardPointsTool handles the update_reward_points MCP tool.
type UpdateRewardPointsTool struct {
	client *skylight.Client
}

func NewUpdateRewardPointsTool(client *skylight.Client) *UpdateRewardPointsTool {
	return &UpdateRewardPointsTool{client: client}
}

func (t *UpdateRewardPointsTool) Definition() mcp.Tool {
	return mcp.NewTool("update_reward_points",
		mcp.WithDescription("Set a family member's point balance."),
		mcp.WithString("profile_id",
			mcp.Required(),
			mcp.Description("Reward profile ID (see get_rewards)"),
		),
		mcp.WithNumber("points",
			mcp.Required(),
			mcp.Description("New balance"),
		),
	)
}

func (t *UpdateRewardPointsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	profileID := req.GetString("profile_id", "")
	if profileID == "" {
		return mcp.NewToolResultError("'profile_id' is required"), nil
	}
	points := intArg(req, "points", -1)
	if points < 0 {
		return mcp.NewToolResultError("'points' must be zero or positive"), nil
	}

	profile, err := t.client.UpdateRewardPoints(ctx, profileID, points)
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s now has %d points.", profile.Attributes.Name, profile.Attributes.Points)), nil
}
