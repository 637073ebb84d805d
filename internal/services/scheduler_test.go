package services

import (
	"testing"
	"time"
)

func TestCycleDue(t *testing.T) {
	at := func(day, hour int) time.Time {
		return time.Date(2026, time.September, day, hour, 30, 0, 0, time.UTC)
	}

	cases := []struct {
		name    string
		now     time.Time
		lastRun time.Time
		want    bool
	}{
		{"right day and hour, never ran", at(1, 9), time.Time{}, true},
		{"wrong day", at(2, 9), time.Time{}, false},
		{"wrong hour", at(1, 10), time.Time{}, false},
		{"already ran this month", at(1, 9), at(1, 9), false},
		{"ran previous month", at(1, 9), time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cycleDue(tc.now, 1, 9, tc.lastRun); got != tc.want {
				t.Errorf("cycleDue = %v, want %v", got, tc.want)
			}
		})
	}
}
