package domain

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	t.Parallel()

	utc := time.UTC
	tests := []struct {
		name string
		t    time.Time
		loc  *time.Location
		want string
	}{
		{
			name: "plain date",
			t:    time.Date(2026, 3, 9, 15, 4, 5, 0, utc),
			loc:  utc,
			want: "2026-03-09",
		},
		{
			name: "single digit month and day are zero padded",
			t:    time.Date(2026, 1, 2, 0, 0, 0, 0, utc),
			loc:  utc,
			want: "2026-01-02",
		},
		{
			name: "just before midnight stays on the same day",
			t:    time.Date(2026, 3, 9, 23, 59, 59, 0, utc),
			loc:  utc,
			want: "2026-03-09",
		},
		{
			name: "timezone shifts the calendar day",
			t:    time.Date(2026, 3, 9, 23, 30, 0, 0, utc),
			loc:  time.FixedZone("UTC+2", 2*3600),
			want: "2026-03-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DateKey(tt.t, tt.loc); got != tt.want {
				t.Errorf("DateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUntilNextMidnight(t *testing.T) {
	t.Parallel()

	utc := time.UTC

	at := time.Date(2026, 3, 9, 23, 0, 0, 0, utc)
	if got := UntilNextMidnight(at, utc); got != time.Hour {
		t.Errorf("got %s, want 1h", got)
	}

	// Exactly at midnight the next boundary is a full day away.
	at = time.Date(2026, 3, 9, 0, 0, 0, 0, utc)
	if got := UntilNextMidnight(at, utc); got != 24*time.Hour {
		t.Errorf("got %s, want 24h", got)
	}
}

func TestDaysBetween(t *testing.T) {
	t.Parallel()

	utc := time.UTC
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day regardless of hours",
			a:    time.Date(2026, 3, 9, 1, 0, 0, 0, utc),
			b:    time.Date(2026, 3, 9, 23, 0, 0, 0, utc),
			want: 0,
		},
		{
			name: "consecutive days across midnight",
			a:    time.Date(2026, 3, 9, 23, 59, 0, 0, utc),
			b:    time.Date(2026, 3, 10, 0, 1, 0, 0, utc),
			want: 1,
		},
		{
			name: "two day gap",
			a:    time.Date(2026, 3, 9, 12, 0, 0, 0, utc),
			b:    time.Date(2026, 3, 11, 12, 0, 0, 0, utc),
			want: 2,
		},
		{
			name: "negative when reversed",
			a:    time.Date(2026, 3, 11, 0, 0, 0, 0, utc),
			b:    time.Date(2026, 3, 9, 0, 0, 0, 0, utc),
			want: -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DaysBetween(tt.a, tt.b, utc); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseLocation_Fallback(t *testing.T) {
	t.Parallel()

	if got := ParseLocation("Not/AZone"); got != time.Local {
		t.Errorf("unknown zone should fall back to time.Local, got %v", got)
	}
	if got := ParseLocation(""); got != time.Local {
		t.Errorf("empty zone should fall back to time.Local, got %v", got)
	}
	if got := ParseLocation("UTC"); got.String() != "UTC" {
		t.Errorf("got %v, want UTC", got)
	}
}
