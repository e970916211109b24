// Package config loads and validates the process configuration from
// environment variables (with optional .env support).
//
// Two mutually exclusive authentication modes are supported:
//
//   - Login mode: SKYLIGHT_EMAIL + SKYLIGHT_PASSWORD are exchanged for a
//     short-lived session token at startup-on-demand.
//   - Token mode: SKYLIGHT_TOKEN is used directly, with an optional
//     SKYLIGHT_AUTH_SCHEME (bearer or basic).
//
// Configuration is loaded exactly once at process start and is immutable
// afterwards. Anything missing or malformed is a fatal startup error,
// never a per-request failure.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AuthMode selects how the client authenticates against the Skylight API.
type AuthMode string

const (
	// AuthLogin exchanges email+password for a session token.
	AuthLogin AuthMode = "login"
	// AuthToken uses a pre-captured token directly.
	AuthToken AuthMode = "token"
)

// Scheme is the Authorization header scheme used in token mode.
type Scheme string

const (
	SchemeBearer Scheme = "bearer"
	SchemeBasic  Scheme = "basic"
)

const (
	// DefaultBaseURL is the Skylight web application origin.
	DefaultBaseURL = "https://app.ourskylight.com"

	// DefaultTimezone is used when SKYLIGHT_TIMEZONE is unset.
	DefaultTimezone = "America/New_York"
)

// Config holds the validated process configuration. Immutable after Load.
type Config struct {
	FrameID  string
	Mode     AuthMode
	Email    string
	Password string
	Token    string
	Scheme   Scheme
	Timezone string
	Location *time.Location
	BaseURL  string
}

// Load reads configuration from the environment, after attempting to
// load a .env file from the working directory (missing .env is fine).
//
// The returned error, when non-nil, is a multi-line diagnostic listing
// every missing or invalid field plus both supported auth modes, so the
// user can fix everything in one pass.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error if no .env

	return fromEnv(os.Getenv)
}

// fromEnv builds a Config from the given lookup function. Split out from
// Load so tests can supply their own environment.
func fromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		FrameID:  strings.TrimSpace(getenv("SKYLIGHT_FRAME_ID")),
		Email:    strings.TrimSpace(getenv("SKYLIGHT_EMAIL")),
		Password: getenv("SKYLIGHT_PASSWORD"),
		Token:    strings.TrimSpace(getenv("SKYLIGHT_TOKEN")),
		Timezone: strings.TrimSpace(getenv("SKYLIGHT_TIMEZONE")),
		BaseURL:  strings.TrimRight(strings.TrimSpace(getenv("SKYLIGHT_BASE_URL")), "/"),
	}

	var problems []string

	if cfg.FrameID == "" {
		problems = append(problems, "SKYLIGHT_FRAME_ID is required")
	}

	// A static token is already resolved, so it wins when both modes are
	// configured.
	switch {
	case cfg.Token != "":
		cfg.Mode = AuthToken
	case cfg.Email != "" && cfg.Password != "":
		cfg.Mode = AuthLogin
	case cfg.Email != "" || cfg.Password != "":
		problems = append(problems, "SKYLIGHT_EMAIL and SKYLIGHT_PASSWORD must both be set for login mode")
	default:
		problems = append(problems, "no credentials configured")
	}

	scheme := strings.ToLower(strings.TrimSpace(getenv("SKYLIGHT_AUTH_SCHEME")))
	switch scheme {
	case "", "bearer":
		cfg.Scheme = SchemeBearer
	case "basic":
		cfg.Scheme = SchemeBasic
	default:
		problems = append(problems, fmt.Sprintf("SKYLIGHT_AUTH_SCHEME must be %q or %q (got %q)", SchemeBearer, SchemeBasic, scheme))
	}

	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("SKYLIGHT_TIMEZONE %q is not a valid IANA timezone", cfg.Timezone))
	} else {
		cfg.Location = loc
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}
	return cfg, nil
}

// Error is the fatal startup diagnostic for invalid configuration.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("invalid configuration:\n")
	for _, p := range e.Problems {
		fmt.Fprintf(&b, "  - %s\n", p)
	}
	b.WriteString(`
Configure exactly one auth mode:

  Login mode (recommended):
    SKYLIGHT_EMAIL=you@example.com
    SKYLIGHT_PASSWORD=...
    SKYLIGHT_FRAME_ID=12345

  Token mode:
    SKYLIGHT_TOKEN=...
    SKYLIGHT_AUTH_SCHEME=bearer   # or basic
    SKYLIGHT_FRAME_ID=12345

  Optional:
    SKYLIGHT_TIMEZONE=America/New_York`)
	return b.String()
}
