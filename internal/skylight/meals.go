package skylight

import (
	"context"
	"net/http"
	"net/url"
)

// MealCategory is a sitting slot (breakfast, lunch, dinner, ...).
type MealCategory struct {
	ID         string
	Attributes MealCategoryAttributes
}

type MealCategoryAttributes struct {
	Name string `json:"name"`
}

// Recipe is an entry in the family recipe box.
type Recipe struct {
	ID         string
	Attributes RecipeAttributes
}

type RecipeAttributes struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// MealSitting is a scheduled meal: a date, a slot, and optionally a
// recipe or free-text name.
type MealSitting struct {
	ID         string
	Attributes MealSittingAttributes
}

type MealSittingAttributes struct {
	Date           string `json:"date"`
	MealCategoryID string `json:"meal_category_id"`
	RecipeID       string `json:"recipe_id,omitempty"`
	Name           string `json:"name,omitempty"`
}

// MealSittingParams is the flat body for scheduling a meal. Exactly one
// of RecipeID or Name should be set.
type MealSittingParams struct {
	Date           string `json:"date"`
	MealCategoryID string `json:"meal_category_id"`
	RecipeID       string `json:"recipe_id,omitempty"`
	Name           string `json:"name,omitempty"`
}

// GetMealCategories returns the frame's sitting slots.
func (c *Client) GetMealCategories(ctx context.Context) ([]MealCategory, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/meal_categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []struct {
			ID         string                 `json:"id"`
			Attributes MealCategoryAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	cats := make([]MealCategory, 0, len(doc.Data))
	for _, r := range doc.Data {
		cats = append(cats, MealCategory{ID: r.ID, Attributes: r.Attributes})
	}
	return cats, nil
}

// ListRecipes returns the recipe box.
func (c *Client) ListRecipes(ctx context.Context) ([]Recipe, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/recipes", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []struct {
			ID         string           `json:"id"`
			Attributes RecipeAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(doc.Data))
	for _, r := range doc.Data {
		recipes = append(recipes, Recipe{ID: r.ID, Attributes: r.Attributes})
	}
	return recipes, nil
}

// CreateRecipe adds a recipe to the box.
func (c *Client) CreateRecipe(ctx context.Context, attrs RecipeAttributes) (*Recipe, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/recipes", nil, attrs)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data struct {
			ID         string           `json:"id"`
			Attributes RecipeAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &Recipe{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// GetMealPlan returns the sittings scheduled in an inclusive date range.
func (c *Client) GetMealPlan(ctx context.Context, dateMin, dateMax string) ([]MealSitting, error) {
	q := url.Values{}
	param(q, "date_min", dateMin)
	param(q, "date_max", dateMax)

	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/meal_sittings", q, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []struct {
			ID         string                `json:"id"`
			Attributes MealSittingAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	sittings := make([]MealSitting, 0, len(doc.Data))
	for _, r := range doc.Data {
		sittings = append(sittings, MealSitting{ID: r.ID, Attributes: r.Attributes})
	}
	return sittings, nil
}

// ScheduleMeal puts a meal on the plan.
func (c *Client) ScheduleMeal(ctx context.Context, params MealSittingParams) (*MealSitting, error) {
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/meal_sittings", nil, params)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data struct {
			ID         string                `json:"id"`
			Attributes MealSittingAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &MealSitting{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// DeleteMealSitting removes a scheduled meal.
func (c *Client) DeleteMealSitting(ctx context.Context, sittingID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/frames/{frame}/meal_sittings/"+url.PathEscape(sittingID), nil, nil)
	return err
}
