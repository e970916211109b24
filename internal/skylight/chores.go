package skylight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Chore is a chore instance on the frame's chore chart.
type Chore struct {
	ID         string
	Attributes ChoreAttributes
}

// ChoreAttributes is the documented chore shape.
type ChoreAttributes struct {
	Title      string `json:"title"`
	Status     string `json:"status"`
	DueDate    string `json:"due_date,omitempty"`
	AssigneeID string `json:"assignee_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	Points     int    `json:"points,omitempty"`
}

// ChoreParams is the flat body for chore creation.
//
// CategoryID, when set, must be sent as both the singular field and a
// one-element plural list; the API reads one for display and the other
// for the chart grouping, and silently ignores whichever is missing.
type ChoreParams struct {
	Title       string   `json:"title"`
	DueDate     string   `json:"due_date,omitempty"`
	AssigneeID  string   `json:"assignee_id,omitempty"`
	CategoryID  string   `json:"category_id,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	Points      int      `json:"points,omitempty"`
	Recurrence  string   `json:"recurrence,omitempty"`
}

type choreDocument struct {
	Data []struct {
		ID         string          `json:"id"`
		Attributes ChoreAttributes `json:"attributes"`
	} `json:"data"`
}

// ListChores returns chores, optionally filtered by an inclusive date
// range and/or status ("pending", "completed").
func (c *Client) ListChores(ctx context.Context, dateMin, dateMax, status string) ([]Chore, error) {
	q := url.Values{}
	param(q, "date_min", dateMin)
	param(q, "date_max", dateMax)
	param(q, "status", status)

	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/chores", q, nil)
	if err != nil {
		return nil, err
	}

	var doc choreDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	chores := make([]Chore, 0, len(doc.Data))
	for _, r := range doc.Data {
		chores = append(chores, Chore{ID: r.ID, Attributes: r.Attributes})
	}
	return chores, nil
}

// CreateChore creates a single chore. The API only exposes a bulk
// creation endpoint, so even one chore goes up as a one-element array.
func (c *Client) CreateChore(ctx context.Context, params ChoreParams) (*Chore, error) {
	if params.CategoryID != "" {
		params.CategoryIDs = []string{params.CategoryID}
	}

	body := map[string]any{"chores": []ChoreParams{params}}
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/chores/bulk_create", nil, body)
	if err != nil {
		return nil, err
	}

	var doc choreDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("bulk create returned no chores")}
	}
	return &Chore{ID: doc.Data[0].ID, Attributes: doc.Data[0].Attributes}, nil
}

// CompleteChore marks a chore as completed.
func (c *Client) CompleteChore(ctx context.Context, choreID string) (*Chore, error) {
	body := map[string]string{"status": "completed"}
	data, err := c.do(ctx, http.MethodPut, "/api/frames/{frame}/chores/"+url.PathEscape(choreID), nil, body)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Data struct {
			ID         string          `json:"id"`
			Attributes ChoreAttributes `json:"attributes"`
		} `json:"data"`
	}
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &Chore{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// DeleteChore removes a chore.
func (c *Client) DeleteChore(ctx context.Context, choreID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/frames/{frame}/chores/"+url.PathEscape(choreID), nil, nil)
	return err
}
