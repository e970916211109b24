package dates

import (
	"testing"
	"time"
)

// fixNow pins timeNow for the duration of a test.
// 2025-06-16 is a Monday.
func fixNow(t *testing.T, value time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return value }
	t.Cleanup(func() { timeNow = orig })
}

func TestParseDate_ISOPassthrough(t *testing.T) {
	for _, d := range []string{"2025-06-15", "2024-01-01", "1999-12-31"} {
		if got := ParseDate(d, time.UTC); got != d {
			t.Errorf("ParseDate(%q) = %q, want passthrough", d, got)
		}
	}
}

func TestParseDate_RelativeWords(t *testing.T) {
	fixNow(t, time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		input string
		want  string
	}{
		{"today", "2025-06-16"},
		{"Today", "2025-06-16"},
		{"  TOMORROW ", "2025-06-17"},
		{"yesterday", "2025-06-15"},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.input, time.UTC); got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDate_WeekdayStrictlyFuture(t *testing.T) {
	// Monday. Every weekday name must resolve 1-7 days ahead, never
	// today: "monday" itself advances a full week.
	now := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	fixNow(t, now)

	names := []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
	for _, name := range names {
		got := ParseDate(name, time.UTC)
		parsed, err := time.Parse("2006-01-02", got)
		if err != nil {
			t.Fatalf("ParseDate(%q) = %q, not an ISO date", name, got)
		}

		days := int(parsed.Sub(now.Truncate(24*time.Hour)).Hours() / 24)
		if days < 1 || days > 7 {
			t.Errorf("ParseDate(%q) = %q, %d days ahead, want 1-7", name, got, days)
		}
		if !strEqualFold(parsed.Weekday().String(), name) {
			t.Errorf("ParseDate(%q) = %q, lands on %s", name, got, parsed.Weekday())
		}
	}

	if got := ParseDate("monday", time.UTC); got != "2025-06-23" {
		t.Errorf("ParseDate(monday) on a Monday = %q, want 2025-06-23 (full week ahead)", got)
	}
}

func strEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func TestParseDate_SlashFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"6/15/2025", "2025-06-15"},
		{"06/15/2025", "2025-06-15"},
		{"1/2/2026", "2026-01-02"},
		{"12/31/2024", "2024-12-31"},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.input, time.UTC); got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDate_LongFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"June 15, 2025", "2025-06-15"},
		{"Jun 15, 2025", "2025-06-15"},
		{"2025/06/15", "2025-06-15"},
	}
	for _, tt := range tests {
		if got := ParseDate(tt.input, time.UTC); got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDate_UnparseablePassthrough(t *testing.T) {
	for _, input := range []string{"next full moon", "someday", "", "15th-ish"} {
		if got := ParseDate(input, time.UTC); got != input {
			t.Errorf("ParseDate(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12:00 AM", "00:00"},
		{"12:00 PM", "12:00"},
		{"9:30 AM", "09:30"},
		{"11:59 PM", "23:59"},
		{"9:30 pm", "21:30"},
		{"3PM", "15:00"},
		{"09:30", "09:30"},
		{"9:30", "09:30"},
		{"23:59", "23:59"},
		{"0:05", "00:05"},
		{"25:00", "25:00"},
		{"noon-ish", "noon-ish"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseTime(tt.input); got != tt.want {
			t.Errorf("ParseTime(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
