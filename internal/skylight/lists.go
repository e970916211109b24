package skylight

import (
	"context"
	"net/http"
	"net/url"
)

// List is a shopping/to-do list on the frame.
type List struct {
	ID         string
	Attributes ListAttributes
}

type ListAttributes struct {
	Name string `json:"name"`
	Kind string `json:"kind,omitempty"`
}

// ListItem is one entry on a list.
type ListItem struct {
	ID         string
	Attributes ListItemAttributes
}

type ListItemAttributes struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position,omitempty"`
}

// ListItemUpdate carries the flat update body. Nil fields are omitted
// so the server only touches what the caller set.
type ListItemUpdate struct {
	Label     *string `json:"label,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

type listDocument struct {
	Data []struct {
		ID         string         `json:"id"`
		Attributes ListAttributes `json:"attributes"`
	} `json:"data"`
}

type listItemDocument struct {
	Data []struct {
		ID         string             `json:"id"`
		Attributes ListItemAttributes `json:"attributes"`
	} `json:"data"`
}

type listItemOne struct {
	Data struct {
		ID         string             `json:"id"`
		Attributes ListItemAttributes `json:"attributes"`
	} `json:"data"`
}

// GetLists returns all lists on the frame.
func (c *Client) GetLists(ctx context.Context) ([]List, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/lists", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc listDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	lists := make([]List, 0, len(doc.Data))
	for _, r := range doc.Data {
		lists = append(lists, List{ID: r.ID, Attributes: r.Attributes})
	}
	return lists, nil
}

// GetListItems returns the items on one list.
func (c *Client) GetListItems(ctx context.Context, listID string) ([]ListItem, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/lists/"+url.PathEscape(listID)+"/list_items", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc listItemDocument
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(doc.Data))
	for _, r := range doc.Data {
		items = append(items, ListItem{ID: r.ID, Attributes: r.Attributes})
	}
	return items, nil
}

// AddListItem appends an item to a list.
func (c *Client) AddListItem(ctx context.Context, listID, label string) (*ListItem, error) {
	body := map[string]string{"label": label}
	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/lists/"+url.PathEscape(listID)+"/list_items", nil, body)
	if err != nil {
		return nil, err
	}

	var doc listItemOne
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &ListItem{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// UpdateListItem renames and/or checks off an item.
func (c *Client) UpdateListItem(ctx context.Context, listID, itemID string, update ListItemUpdate) (*ListItem, error) {
	path := "/api/frames/{frame}/lists/" + url.PathEscape(listID) + "/list_items/" + url.PathEscape(itemID)
	data, err := c.do(ctx, http.MethodPut, path, nil, update)
	if err != nil {
		return nil, err
	}

	var doc listItemOne
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &ListItem{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// DeleteListItem removes an item from a list.
func (c *Client) DeleteListItem(ctx context.Context, listID, itemID string) error {
	path := "/api/frames/{frame}/lists/" + url.PathEscape(listID) + "/list_items/" + url.PathEscape(itemID)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
