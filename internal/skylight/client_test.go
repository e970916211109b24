package skylight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mwhite/skylight-mcp/internal/config"
)

// testAPI is an httptest-backed fake of the Skylight API: it serves the
// login endpoint and delegates everything else to resource.
type testAPI struct {
	server   *httptest.Server
	logins   atomic.Int64
	requests atomic.Int64
	resource http.HandlerFunc
}

func newTestAPI(t *testing.T, resource http.HandlerFunc) *testAPI {
	t.Helper()
	api := &testAPI{resource: resource}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		api.logins.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id":         "77",
				"attributes": map[string]any{"token": "tok-1"},
			},
		})
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		api.requests.Add(1)
		api.resource(w, r)
	})
	api.server = httptest.NewServer(mux)
	t.Cleanup(api.server.Close)
	return api
}

func (api *testAPI) loginClient() *Client {
	cfg := loginConfig(api.server.URL)
	c := New(cfg)
	c.httpClient = api.server.Client()
	c.auth.httpClient = api.server.Client()
	return c
}

func (api *testAPI) tokenClient(scheme config.Scheme) *Client {
	cfg := &config.Config{
		FrameID: "42",
		Mode:    config.AuthToken,
		Token:   "static-tok",
		Scheme:  scheme,
		BaseURL: api.server.URL,
	}
	c := New(cfg)
	c.httpClient = api.server.Client()
	c.auth.httpClient = api.server.Client()
	return c
}

func TestDo_FrameIDSubstitution(t *testing.T) {
	var gotPath string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	c := api.loginClient()
	if _, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", nil, nil); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/frames/42/chores" {
		t.Errorf("path = %q, want frame id substituted", gotPath)
	}
}

func TestDo_HeadersAndAuth(t *testing.T) {
	var accept, contentType, auth string
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		contentType = r.Header.Get("Content-Type")
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	c := api.loginClient()

	// GET without a body: no Content-Type.
	if _, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/lists", nil, nil); err != nil {
		t.Fatal(err)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
	if contentType != "" {
		t.Errorf("Content-Type = %q on a bodiless request, want empty", contentType)
	}
	if !strings.HasPrefix(auth, "Basic ") {
		t.Errorf("Authorization = %q, want Basic credentials in login mode", auth)
	}

	// POST with a body: Content-Type set.
	if _, err := c.do(context.Background(), http.MethodPost, "/api/frames/{frame}/lists", nil, map[string]string{"a": "b"}); err != nil {
		t.Fatal(err)
	}
	if contentType != "application/json" {
		t.Errorf("Content-Type = %q with a body, want application/json", contentType)
	}
}

func TestDo_QueryOmitsAbsentParams(t *testing.T) {
	var gotQuery url.Values
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{}`))
	})

	c := api.loginClient()
	q := url.Values{}
	param(q, "date_min", "2025-06-15")
	param(q, "date_max", "")
	param(q, "status", "")

	if _, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", q, nil); err != nil {
		t.Fatal(err)
	}
	if gotQuery.Get("date_min") != "2025-06-15" {
		t.Errorf("date_min = %q, want 2025-06-15", gotQuery.Get("date_min"))
	}
	if _, present := gotQuery["date_max"]; present {
		t.Error("date_max sent despite being absent")
	}
	if _, present := gotQuery["status"]; present {
		t.Error("status sent despite being absent")
	}
}

func TestDo_RetryOnceOn401ThenSucceed(t *testing.T) {
	var calls atomic.Int64
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	c := api.loginClient()
	data, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", nil, nil)
	if err != nil {
		t.Fatalf("do() error = %v, want recovery after relogin", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("body = %s", data)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("resource calls = %d, want 2 (original + one retry)", got)
	}
	if got := api.logins.Load(); got != 2 {
		t.Errorf("logins = %d, want 2 (initial + forced relogin)", got)
	}
}

func TestDo_SecondConsecutive401Surfaces(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := api.loginClient()
	_, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", nil, nil)

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v (%T), want *AuthError", err, err)
	}
	if !strings.Contains(authErr.Message, "SKYLIGHT_FRAME_ID") {
		t.Errorf("delegated-mode final 401 should hint at the frame id: %q", authErr.Message)
	}
	if got := api.requests.Load(); got != 2 {
		t.Errorf("resource calls = %d, want exactly 2 (retry budget is 1)", got)
	}
}

func TestDo_TokenMode401NeverRetries(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	c := api.tokenClient(config.SchemeBearer)
	_, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", nil, nil)

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v (%T), want *AuthError", err, err)
	}
	if got := api.requests.Load(); got != 1 {
		t.Errorf("resource calls = %d, want 1 (no retry without a login to refresh)", got)
	}
	if got := api.logins.Load(); got != 0 {
		t.Errorf("logins = %d, want 0 in token mode", got)
	}
}

func TestDo_NotFound(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"whatever the body says"}`))
	})

	c := api.loginClient()
	_, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores/999", nil, nil)

	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("error = %v (%T), want *NotFoundError regardless of body", err, err)
	}
	if Recoverable(err) {
		t.Error("404 should not be recoverable")
	}
}

func TestDo_RateLimitCarriesRetryAfter(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	c := api.loginClient()
	_, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", nil, nil)

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("error = %v (%T), want *RateLimitError", err, err)
	}
	if rlErr.RetryAfter != 30 {
		t.Errorf("RetryAfter = %d, want 30", rlErr.RetryAfter)
	}
	if !strings.Contains(rlErr.Error(), "30") {
		t.Errorf("message should contain the wait time: %q", rlErr.Error())
	}
	if !Recoverable(err) {
		t.Error("429 should be recoverable")
	}
}

func TestDo_GenericErrorRecoverability(t *testing.T) {
	tests := []struct {
		status      int
		recoverable bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnprocessableEntity, false},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
	}
	for _, tt := range tests {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`oops`))
		})

		c := api.loginClient()
		_, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/chores", nil, nil)

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: error = %v (%T), want *APIError", tt.status, err, err)
		}
		if apiErr.StatusCode != tt.status {
			t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.status)
		}
		if Recoverable(err) != tt.recoverable {
			t.Errorf("status %d: Recoverable = %v, want %v", tt.status, Recoverable(err), tt.recoverable)
		}
	}
}

func TestDo_NotModifiedReturnsEmpty(t *testing.T) {
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})

	c := api.loginClient()
	data, err := c.do(context.Background(), http.MethodGet, "/api/frames/{frame}/calendar_events", nil, nil)
	if err != nil {
		t.Fatalf("do() error = %v, want empty success on 304", err)
	}
	if data != nil {
		t.Errorf("data = %q, want nil", data)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("a", 300)
	if got := truncate(long, 200); len(got) != 200 {
		t.Errorf("len = %d, want 200", len(got))
	}
}
