// Package dates converts natural-language and common date/time strings
// into the canonical forms the Skylight API expects (ISO dates, 24-hour
// HH:MM times).
//
// Parsing is deliberately lenient: input that matches nothing is
// returned unchanged rather than rejected, so the server can attempt its
// own interpretation or answer with a clear message of its own.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

const isoDate = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDate converts input to an ISO YYYY-MM-DD date in the given
// location. Recognized forms (case-insensitive, whitespace-trimmed):
// "today", "tomorrow", "yesterday", weekday names (the next occurrence
// strictly after today; a weekday naming today advances a full week),
// ISO dates (passthrough), and M/D/YYYY. Anything else that a generic
// parse can't handle comes back unchanged.
func ParseDate(input string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	trimmed := strings.TrimSpace(input)
	lower := strings.ToLower(trimmed)
	today := timeNow().In(loc)

	switch lower {
	case "today":
		return today.Format(isoDate)
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(isoDate)
	case "yesterday":
		return today.AddDate(0, 0, -1).Format(isoDate)
	}

	if wd, ok := weekdays[lower]; ok {
		days := (int(wd) - int(today.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days).Format(isoDate)
	}

	if t, err := time.Parse(isoDate, trimmed); err == nil {
		return t.Format(isoDate)
	}
	if t, err := time.Parse("1/2/2006", trimmed); err == nil {
		return t.Format(isoDate)
	}

	// Generic fallbacks for formats people paste in.
	for _, layout := range []string{
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
		"2006/01/02",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(isoDate)
		}
	}

	return input
}

// ParseTime converts input to 24-hour "HH:MM". Handles zero-padding of
// bare H:MM, and 12-hour H:MM AM/PM (12 AM -> 00:00, 12 PM -> 12:00).
// Anything else is passed through unchanged.
func ParseTime(input string) string {
	trimmed := strings.TrimSpace(input)
	upper := strings.ToUpper(trimmed)

	for _, layout := range []string{"3:04 PM", "3:04PM", "3 PM", "3PM"} {
		if t, err := time.Parse(layout, upper); err == nil {
			return t.Format("15:04")
		}
	}

	var h, m int
	if _, err := fmt.Sscanf(trimmed, "%d:%d", &h, &m); err == nil {
		if h >= 0 && h <= 23 && m >= 0 && m <= 59 && !strings.Contains(trimmed, " ") {
			return fmt.Sprintf("%02d:%02d", h, m)
		}
	}

	return input
}
