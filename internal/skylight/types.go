package skylight

// The API speaks a JSON:API-ish dialect: resources come back as
// {id, type, attributes}. Resources with a documented shape get typed
// attribute structs in their own files; resources whose attributes are
// an open-ended bag (calendar events, devices, frame settings, photos)
// keep a generic map.

// resourceObject is a generic resource with open attributes.
type resourceObject struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
}

// document wraps a single-resource response.
type document struct {
	Data resourceObject `json:"data"`
}

// documentList wraps a multi-resource response.
type documentList struct {
	Data []resourceObject `json:"data"`
}
