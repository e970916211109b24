package skylight

import (
	"context"
	"net/http"
)

// FrameInfo and Device carry open attribute bags; the shapes vary by
// firmware and aren't part of any documented contract.

type FrameInfo struct {
	ID         string
	Attributes map[string]any
}

type Device struct {
	ID         string
	Attributes map[string]any
}

// GetFrameInfo returns the frame record itself (name, settings, plan).
func (c *Client) GetFrameInfo(ctx context.Context) (*FrameInfo, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	return &FrameInfo{ID: doc.Data.ID, Attributes: doc.Data.Attributes}, nil
}

// ListDevices returns the physical devices paired to the frame.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/frames/{frame}/devices", nil, nil)
	if err != nil {
		return nil, err
	}

	var doc documentList
	if err := decode(data, &doc); err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(doc.Data))
	for _, r := range doc.Data {
		devices = append(devices, Device{ID: r.ID, Attributes: r.Attributes})
	}
	return devices, nil
}
