package challenge

import (
	"testing"
	"time"
)

func TestStatus(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before start", start.Add(-time.Hour), StatusUpcoming},
		{"at start", start, StatusInProgress},
		{"mid window", start.AddDate(0, 0, 10), StatusInProgress},
		{"at end", end, StatusInProgress},
		{"after end", end.Add(time.Minute), StatusCompleted},
	}

	for _, tc := range cases {
		if got := Status(start, end, tc.now); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	if got := DaysRemaining(now.AddDate(0, 0, 5), now); got != 5 {
		t.Fatalf("expected 5 days, got %d", got)
	}
	// Partial days floor down.
	if got := DaysRemaining(now.Add(36*time.Hour), now); got != 1 {
		t.Fatalf("expected 1 day, got %d", got)
	}
	if got := DaysRemaining(now.Add(-time.Hour), now); got != 0 {
		t.Fatalf("past end date must clamp to 0, got %d", got)
	}
	if got := DaysRemaining(now, now); got != 0 {
		t.Fatalf("expected 0 at the end date, got %d", got)
	}
}
