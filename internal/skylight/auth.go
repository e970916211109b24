package skylight

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/mwhite/skylight-mcp/internal/config"
)

// credential is the live session state in login mode. Replaced wholesale
// on re-login, never merged. Not persisted anywhere.
type credential struct {
	userID string
	token  string
	plan   string
}

// loginFlight represents one in-flight login exchange. Concurrent
// resolvers block on done and then read the shared result, so at most
// one POST /api/sessions is outstanding at any instant.
type loginFlight struct {
	done chan struct{}
	cred *credential
	err  error
}

// authenticator resolves, caches, and invalidates the session credential
// and builds the Authorization header for every outgoing request.
type authenticator struct {
	mode       config.AuthMode
	email      string
	password   string
	token      string
	scheme     config.Scheme
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	cred   *credential
	flight *loginFlight
}

func newAuthenticator(cfg *config.Config, httpClient *http.Client) *authenticator {
	return &authenticator{
		mode:       cfg.Mode,
		email:      cfg.Email,
		password:   cfg.Password,
		token:      cfg.Token,
		scheme:     cfg.Scheme,
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}
}

// canRelogin reports whether a 401 on an authenticated request can be
// healed by forcing a fresh login. Static tokens cannot be refreshed.
func (a *authenticator) canRelogin() bool {
	return a.mode == config.AuthLogin
}

// invalidate drops the cached credential so the next resolve re-logins.
func (a *authenticator) invalidate() {
	a.mu.Lock()
	a.cred = nil
	a.mu.Unlock()
}

// authorizationHeader returns the header value for the configured mode.
// Login mode combines the account id with the token; sending the token
// alone is silently rejected by the API, so there is no bearer path for
// login-mode credentials.
func (a *authenticator) authorizationHeader(ctx context.Context) (string, error) {
	if a.mode == config.AuthToken {
		if a.scheme == config.SchemeBasic {
			return "Basic " + a.token, nil
		}
		return "Bearer " + a.token, nil
	}

	cred, err := a.resolve(ctx)
	if err != nil {
		return "", err
	}
	pair := base64.StdEncoding.EncodeToString([]byte(cred.userID + ":" + cred.token))
	return "Basic " + pair, nil
}

// resolve returns the cached credential, or performs a login when none
// is cached. If another caller already started a login, it waits on that
// same exchange instead of issuing a second one; all waiters observe the
// same credential or the same error.
func (a *authenticator) resolve(ctx context.Context) (*credential, error) {
	a.mu.Lock()
	if a.cred != nil {
		cred := a.cred
		a.mu.Unlock()
		return cred, nil
	}
	if f := a.flight; f != nil {
		a.mu.Unlock()
		select {
		case <-f.done:
			return f.cred, f.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f := &loginFlight{done: make(chan struct{})}
	a.flight = f
	a.mu.Unlock()

	f.cred, f.err = a.login(ctx)

	a.mu.Lock()
	if f.err == nil {
		a.cred = f.cred
	}
	a.flight = nil
	a.mu.Unlock()
	close(f.done)

	return f.cred, f.err
}

// sessionResponse is the payload returned by POST /api/sessions.
type sessionResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Email              string `json:"email"`
			Token              string `json:"token"`
			SubscriptionStatus string `json:"subscription_status"`
		} `json:"attributes"`
	} `json:"data"`
}

// login exchanges email+password for a session token.
func (a *authenticator) login(ctx context.Context) (*credential, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    a.email,
		"password": a.password,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal login body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read login response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &AuthError{Message: "Skylight rejected the login credentials; check SKYLIGHT_EMAIL and SKYLIGHT_PASSWORD"}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: truncate(string(body), bodySnippetLimit)}
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("login response: %w", err)}
	}
	if session.Data.Attributes.Token == "" {
		return nil, &ParseError{Err: fmt.Errorf("login response has no token")}
	}

	return &credential{
		userID: session.Data.ID,
		token:  session.Data.Attributes.Token,
		plan:   session.Data.Attributes.SubscriptionStatus,
	}, nil
}
