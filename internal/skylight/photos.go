package skylight

import (
	"context"
	"net/http"
)

// Photo is an item in the frame's photo rotation. Open attribute bag:
// the photo schema carries CDN internals we don't model.
type Photo struct {
	ID         string
	Attributes map[string]any
}

// ListPhotos returns the photos currently on the frame.
func (c *Client) ListPhotos(ctx context.Context) ([]Photo, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/photos", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc documentList
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	photos := make([]Photo, 0, len(doc.Data))
	for _, r := range doc.Data {
		photos = append(photos, Photo{ID: r.ID, Attributes: r.Attributes})
	}
	return photos, nil
}

// UploadPhotoFromURL asks the server to fetch and add a photo by URL.
func (c *Client) UploadPhotoFromURL(ctx context.Context, sourceURL, caption string) (*Photo, error) {
	body := map[string]string{"url": sourceURL}
	if caption != "" {
		body["caption"] = caption
	}

	data, err := c.do(ctx, http.MethodPost, "/api/frames/{frame}/photos", nil, body)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &Photo{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}
