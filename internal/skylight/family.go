package skylight

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// FamilyMember is a person on the frame.
type FamilyMember struct {
	ID         string
	Attributes FamilyMemberAttributes
}

type FamilyMemberAttributes struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Color string `json:"color,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Category is a chore/event category (used for grouping and colors).
type Category struct {
	ID         string
	Attributes CategoryAttributes
}

type CategoryAttributes struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// GetFamilyMembers returns everyone on the frame.
func (c *Client) GetFamilyMembers(ctx context.Context) ([]FamilyMember, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/family_members", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []struct {
			ID         string                 `json:"id"`
			Attributes FamilyMemberAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	members := make([]FamilyMember, 0, len(doc.Data))
	for _, r := range doc.Data {
		members = append(members, FamilyMember{ID: r.ID, Attributes: r.Attributes})
	}
	return members, nil
}

// GetCategories returns the frame's categories.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/categories", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data []struct {
			ID         string             `json:"id"`
			Attributes CategoryAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	cats := make([]Category, 0, len(doc.Data))
	for _, r := range doc.Data {
		cats = append(cats, Category{ID: r.ID, Attributes: r.Attributes})
	}
	return cats, nil
}

// FindCategoryByName resolves a category label (case-insensitive) to its
// id. A name that matches nothing returns a NotFoundError listing the
// labels the frame actually has.
func (c *Client) FindCategoryByName(ctx context.Context, name string) (*Category, error) {
	cats, err := c.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	for i := range cats {
		if strings.EqualFold(cats[i].Attributes.Label, name) {
			return &cats[i], nil
		}
	}

	known := make([]string, 0, len(cats))
	for _, cat := range cats {
		known = append(known, cat.Attributes.Label)
	}
	return nil, &NotFoundError{Message: fmt.Sprintf("no category named %q; known categories: %s", name, strings.Join(known, ", "))}
}
