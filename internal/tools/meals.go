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

// GetMealPlanTool handles the get_meal_plan MCP tool.
type GetMealPlanTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewGetMealPlanTool(client *skylight.Client, loc *time.Location) *GetMealPlanTool {
	return &GetMealPlanTool{client: client, loc: loc}
}

func (t *GetMealPlanTool) Definition() mcp.Tool {
	return mcp.NewTool("get_meal_plan",
		mcp.WithDescription("Show the meals planned in a date range."),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("First day of the range (inclusive)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Last day of the range (inclusive). Defaults to start_date."),
		),
	)
}

func (t *GetMealPlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := dates.ParseDate(req.GetString("start_date", ""), t.loc)
	if start == "" {
		return mcp.NewToolResultError("'start_date' is required"), nil
	}
	end := dates.ParseDate(req.GetString("end_date", ""), t.loc)
	if end == "" {
		end = start
	}

	sittings, err := t.client.GetMealPlan(ctx, start, end)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(sittings) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No meals planned between %s and %s.", start, end)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d meals planned:\n\n", len(sittings))
	for _, s := range sittings {
		name := s.Attributes.Name
		if name == "" && s.Attributes.RecipeID != "" {
			name = "recipe " + s.Attributes.RecipeID
		}
		fmt.Fprintf(&b, "- %s: %s (sitting %s)\n", s.Attributes.Date, orDash(name), s.ID)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// GetMealCategoriesTool handles the get_meal_categories MCP tool.
type GetMealCategoriesTool struct {
	client *skylight.Client
}

func NewGetMealCategoriesTool(client *skylight.Client) *GetMealCategoriesTool {
	return &GetMealCategoriesTool{client: client}
}

func (t *GetMealCategoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_meal_categories",
		mcp.WithDescription("Show the meal slots (breakfast, lunch, dinner, ...) and their IDs."),
	)
}

func (t *GetMealCategoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats, err := t.client.GetMealCategories(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(cats) == 0 {
		return mcp.NewToolResultText("No meal categories configured."), nil
	}

	var b strings.Builder
	for _, cat := range cats {
		fmt.Fprintf(&b, "- [%s] %s\n", cat.ID, cat.Attributes.Name)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ListRecipesTool handles the list_recipes MCP tool.
type ListRecipesTool struct {
	client *skylight.Client
}

func NewListRecipesTool(client *skylight.Client) *ListRecipesTool {
	return &ListRecipesTool{client: client}
}

func (t *ListRecipesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_recipes",
		mcp.WithDescription("Show the family recipe box."),
	)
}

func (t *ListRecipesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recipes, err := t.client.ListRecipes(ctx)
	if err != nil {
		return renderFailure(err), nil
	}
	if len(recipes) == 0 {
		return mcp.NewToolResultText("The recipe box is empty."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d recipes:\n\n", len(recipes))
	for _, r := range recipes {
		fmt.Fprintf(&b, "- [%s] %s", r.ID, r.Attributes.Name)
		if r.Attributes.URL != "" {
			fmt.Fprintf(&b, " (%s)", r.Attributes.URL)
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// CreateRecipeTool handles the create_recipe MCP tool.
type CreateRecipeTool struct {
	client *skylight.Client
}

func NewCreateRecipeTool(client *skylight.Client) *CreateRecipeTool {
	return &CreateRecipeTool{client: client}
}

func (t *CreateRecipeTool) Definition() mcp.Tool {
	return mcp.NewTool("create_recipe",
		mcp.WithDescription("Add a recipe to the recipe box."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Recipe name"),
		),
		mcp.WithString("description", mcp.Description("Short description or ingredients")),
		mcp.WithString("url", mcp.Description("Link to the full recipe")),
	)
}

func (t *CreateRecipeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	recipe, err := t.client.CreateRecipe(ctx, skylight.RecipeAttributes{
		Name:        name,
		Description: req.GetString("description", ""),
		URL:         req.GetString("url", ""),
	})
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added recipe %q (id %s).", name, recipe.ID)), nil
}

// ScheduleMealTool handles the schedule_meal MCP tool.
type ScheduleMealTool struct {
	client *skylight.Client
	loc    *time.Location
}

func NewScheduleMealTool(client *skylight.Client, loc *time.Location) *ScheduleMealTool {
	return &ScheduleMealTool{client: client, loc: loc}
}

func (t *ScheduleMealTool) Definition() mcp.Tool {
	return mcp.NewTool("schedule_meal",
		mcp.WithDescription(
			"Put a meal on the plan. Provide either a recipe_id from list_recipes "+
				"or a free-text meal name.",
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day to schedule (natural language or ISO)"),
		),
		mcp.WithString("meal_category_id",
			mcp.Required(),
			mcp.Description("Slot ID from get_meal_categories"),
		),
		mcp.WithString("recipe_id", mcp.Description("Recipe to schedule")),
		mcp.WithString("name", mcp.Description("Free-text meal name, e.g. 'Leftovers'")),
	)
}

func (t *ScheduleMealTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date := dates.ParseDate(req.GetString("date", ""), t.loc)
	categoryID := req.GetString("meal_category_id", "")
	if date == "" || categoryID == "" {
		return mcp.NewToolResultError("'date' and 'meal_category_id' are required"), nil
	}

	recipeID := req.GetString("recipe_id", "")
	name := req.GetString("name", "")
	if recipeID == "" && name == "" {
		return mcp.NewToolResultError("provide 'recipe_id' or 'name'"), nil
	}

	sitting, err := t.client.ScheduleMeal(ctx, skylight.MealSittingParams{
		Date:           date,
		MealCategoryID: categoryID,
		RecipeID:       recipeID,
		Name:           name,
	})
	if err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Scheduled meal on %s (sitting %s).", date, sitting.ID)), nil
}

// DeleteMealSittingTool handles the delete_meal_sitting MCP tool.
type DeleteMealSittingTool struct {
	client *skylight.Client
}

func NewDeleteMealSittingTool(client *skylight.Client) *DeleteMealSittingTool {
	return &DeleteMealSittingTool{client: client}
}

func (t *DeleteMealSittingTool) Definition() mcp.Tool {
	return mcp.NewTool("delete_meal_sitting",
		mcp.WithDescription("Remove a planned meal."),
		mcp.WithString("sitting_id",
			mcp.Required(),
			mcp.Description("ID of the sitting (see get_meal_plan)"),
		),
	)
}

func (t *DeleteMealSittingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sittingID := req.GetString("sitting_id", "")
	if sittingID == "" {
		return mcp.NewToolResultError("'sitting_id' is required"), nil
	}
	if err := t.client.DeleteMealSitting(ctx, sittingID); err != nil {
		return renderFailure(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed sitting %s.", sittingID)), nil
}
