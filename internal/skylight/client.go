// Package skylight is an authenticated client for the Skylight frame
// API (the reverse-engineered REST API behind app.ourskylight.com).
//
// The client owns its own session state: construct one per
// configuration, pass it to whatever needs it. There are no package
// globals, so independent instances with distinct configs can coexist
// (the tests rely on this).
//
// Request flow: endpoint wrapper -> do() -> authenticator (may log in)
// -> remote API -> classification. Every failure leaves do() as exactly
// one of the typed errors in errors.go; nothing downstream reclassifies.
package skylight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mwhite/skylight-mcp/internal/config"
)

const (
	// framePlaceholder in a path template is replaced with the
	// configured frame id before dispatch.
	framePlaceholder = "{frame}"

	// bodySnippetLimit caps how much of an error response body is
	// carried into an APIError.
	bodySnippetLimit = 200

	requestTimeout = 30 * time.Second
)

// Client dispatches authenticated requests against one Skylight frame.
type Client struct {
	frameID    string
	baseURL    string
	httpClient *http.Client
	auth       *authenticator
}

// New builds a Client for the given configuration.
func New(cfg *config.Config) *Client {
	httpClient := &http.Client{Timeout: requestTimeout}
	return &Client{
		frameID:    cfg.FrameID,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		auth:       newAuthenticator(cfg, httpClient),
	}
}

// do executes one logical API operation. On a 401 in login mode it
// invalidates the cached session and re-runs the request exactly once
// with a fresh login; the second failure is always surfaced.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	retried := false
	for {
		data, resp, err := c.send(ctx, method, path, query, body)
		if err != nil {
			return nil, err
		}

		status := resp.StatusCode
		switch {
		case status >= 200 && status <= 299, status == http.StatusNotModified:
			if status == http.StatusNoContent || status == http.StatusNotModified {
				return nil, nil
			}
			return data, nil

		case status == http.StatusUnauthorized:
			if c.auth.canRelogin() {
				if !retried {
					c.auth.invalidate()
					retried = true
					continue
				}
				return nil, &AuthError{Message: "Skylight rejected a freshly obtained session; the credentials work but SKYLIGHT_FRAME_ID may not belong to this account"}
			}
			return nil, &AuthError{Message: "Skylight rejected the configured token; check SKYLIGHT_TOKEN and SKYLIGHT_AUTH_SCHEME"}

		case status == http.StatusNotFound:
			return nil, &NotFoundError{Message: fmt.Sprintf("%s %s: not found", method, path)}

		case status == http.StatusTooManyRequests:
			seconds := 0
			if v := resp.Header.Get("Retry-After"); v != "" {
				if n, convErr := strconv.Atoi(strings.TrimSpace(v)); convErr == nil {
					seconds = n
				}
			}
			return nil, &RateLimitError{RetryAfter: seconds}

		default:
			return nil, &APIError{StatusCode: status, Body: truncate(string(data), bodySnippetLimit)}
		}
	}
}

// send builds and issues a single HTTP request. The caller classifies
// the status; send only fails on marshalling, credential resolution, or
// transport-level errors.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, *http.Response, error) {
	target := c.baseURL + strings.ReplaceAll(path, framePlaceholder, url.PathEscape(c.frameID))
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authHeader, err := c.auth.authorizationHeader(ctx)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return data, resp, nil
}

// decode unmarshals a response body, mapping failures to ParseError.
// An empty body (204/304) decodes to the zero value.
func decode(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{Err: err}
	}
	return nil
}

// param sets key=value on the query, skipping absent values entirely so
// they never show up as empty strings in the query string.
func param(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
