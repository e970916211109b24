package skylight

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mwhite/skylight-mcp/internal/config"
)

// loginHandler fakes POST /api/sessions, counting exchanges.
func loginHandler(logins *atomic.Int64, delay time.Duration, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logins.Add(1)
		time.Sleep(delay)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id": "77",
				"attributes": map[string]any{
					"email":               "you@example.com",
					"token":               "tok-1",
					"subscription_status": "active",
				},
			},
		})
	}
}

func loginConfig(baseURL string) *config.Config {
	return &config.Config{
		FrameID:  "42",
		Mode:     config.AuthLogin,
		Email:    "you@example.com",
		Password: "hunter2",
		Scheme:   config.SchemeBearer,
		BaseURL:  baseURL,
	}
}

func TestResolve_ConcurrentCallersShareOneLogin(t *testing.T) {
	var logins atomic.Int64
	ts := httptest.NewServer(loginHandler(&logins, 50*time.Millisecond, http.StatusOK))
	defer ts.Close()

	a := newAuthenticator(loginConfig(ts.URL), ts.Client())

	const callers = 10
	tokens := make([]string, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cred, err := a.resolve(context.Background())
			errs[i] = err
			if cred != nil {
				tokens[i] = cred.token
			}
		}(i)
	}
	wg.Wait()

	if got := logins.Load(); got != 1 {
		t.Errorf("login exchanges = %d, want exactly 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: resolve error = %v", i, errs[i])
		}
		if tokens[i] != "tok-1" {
			t.Errorf("caller %d: token = %q, want tok-1", i, tokens[i])
		}
	}
}

func TestResolve_ConcurrentCallersShareOneFailure(t *testing.T) {
	var logins atomic.Int64
	ts := httptest.NewServer(loginHandler(&logins, 50*time.Millisecond, http.StatusServiceUnavailable))
	defer ts.Close()

	a := newAuthenticator(loginConfig(ts.URL), ts.Client())

	const callers = 8
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.resolve(context.Background())
		}(i)
	}
	wg.Wait()

	if got := logins.Load(); got != 1 {
		t.Errorf("login exchanges = %d, want exactly 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] == nil {
			t.Fatalf("caller %d: expected error", i)
		}
		if errs[i] != errs[0] {
			t.Errorf("caller %d got a different error than caller 0: %v vs %v", i, errs[i], errs[0])
		}
	}
}

func TestResolve_CachedCredentialSkipsNetwork(t *testing.T) {
	var logins atomic.Int64
	ts := httptest.NewServer(loginHandler(&logins, 0, http.StatusOK))
	defer ts.Close()

	a := newAuthenticator(loginConfig(ts.URL), ts.Client())

	for i := 0; i < 3; i++ {
		if _, err := a.resolve(context.Background()); err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
	}
	if got := logins.Load(); got != 1 {
		t.Errorf("login exchanges = %d, want 1 (cache hit after first)", got)
	}
}

func TestResolve_InvalidateForcesRelogin(t *testing.T) {
	var logins atomic.Int64
	ts := httptest.NewServer(loginHandler(&logins, 0, http.StatusOK))
	defer ts.Close()

	a := newAuthenticator(loginConfig(ts.URL), ts.Client())

	if _, err := a.resolve(context.Background()); err != nil {
		t.Fatal(err)
	}
	a.invalidate()
	if _, err := a.resolve(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := logins.Load(); got != 2 {
		t.Errorf("login exchanges = %d, want 2 after invalidate", got)
	}
}

func TestLogin_UnauthorizedNamesCredentialVars(t *testing.T) {
	var logins atomic.Int64
	ts := httptest.NewServer(loginHandler(&logins, 0, http.StatusUnauthorized))
	defer ts.Close()

	a := newAuthenticator(loginConfig(ts.URL), ts.Client())

	_, err := a.resolve(context.Background())
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v (%T), want *AuthError", err, err)
	}
	for _, want := range []string{"SKYLIGHT_EMAIL", "SKYLIGHT_PASSWORD"} {
		if !strings.Contains(authErr.Message, want) {
			t.Errorf("auth error should name %s: %q", want, authErr.Message)
		}
	}
}

func TestLogin_ServerErrorTruncatesBody(t *testing.T) {
	long := strings.Repeat("x", 500)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, long)
	}))
	defer ts.Close()

	a := newAuthenticator(loginConfig(ts.URL), ts.Client())

	_, err := a.resolve(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v (%T), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", apiErr.StatusCode)
	}
	if len(apiErr.Body) != bodySnippetLimit {
		t.Errorf("body length = %d, want truncated to %d", len(apiErr.Body), bodySnippetLimit)
	}
}

func TestAuthorizationHeader_DelegatedCombinesIDAndToken(t *testing.T) {
	var logins atomic.Int64
	ts := httptest.NewServer(loginHandler(&logins, 0, http.StatusOK))
	defer ts.Close()

	// Even with a basic scheme configured, delegated mode must combine
	// the account id with the token.
	cfg := loginConfig(ts.URL)
	cfg.Scheme = config.SchemeBasic
	a := newAuthenticator(cfg, ts.Client())

	header, err := a.authorizationHeader(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("77:tok-1"))
	if header != want {
		t.Errorf("header = %q, want %q", header, want)
	}
}

func TestAuthorizationHeader_TokenModeSchemes(t *testing.T) {
	tests := []struct {
		scheme config.Scheme
		want   string
	}{
		{config.SchemeBearer, "Bearer static-tok"},
		{config.SchemeBasic, "Basic static-tok"},
	}
	for _, tt := range tests {
		a := newAuthenticator(&config.Config{
			FrameID: "42",
			Mode:    config.AuthToken,
			Token:   "static-tok",
			Scheme:  tt.scheme,
			BaseURL: "http://unused.invalid",
		}, http.DefaultClient)

		header, err := a.authorizationHeader(context.Background())
		if err != nil {
			t.Fatalf("scheme %s: %v", tt.scheme, err)
		}
		if header != tt.want {
			t.Errorf("scheme %s: header = %q, want %q", tt.scheme, header, tt.want)
		}
	}
}
