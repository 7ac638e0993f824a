package solar

import (
	"testing"
	"time"
)

func TestFormatSigned(t *testing.T) {
	d := func(v time.Duration) *time.Duration { return &v }

	tests := []struct {
		in   *time.Duration
		want string
	}{
		{nil, "N/A"},
		{d(0), "+0s"},
		{d(12 * time.Second), "+12s"},
		{d(-12 * time.Second), "-12s"},
		{d(time.Minute), "+1m 0s"},
		{d(-(2*time.Minute + 5*time.Second)), "-2m 5s"},
		{d(90*time.Minute + 3*time.Second), "+90m 3s"},
		{d(1500 * time.Millisecond), "+1s"},
		{d(-500 * time.Millisecond), "+0s"},
	}
	for _, tc := range tests {
		if got := FormatSigned(tc.in); got != tc.want {
			t.Errorf("FormatSigned(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRelative(t *testing.T) {
	d := func(v time.Duration) *time.Duration { return &v }

	tests := []struct {
		in   *time.Duration
		want string
	}{
		{nil, "N/A"},
		{d(0), "same time"},
		{d(12 * time.Second), "12s later"},
		{d(-12 * time.Second), "12s earlier"},
		{d(time.Minute), "1m 0s later"},
		{d(-(3*time.Minute + 7*time.Second)), "3m 7s earlier"},
		{d(400 * time.Millisecond), "same time"},
	}
	for _, tc := range tests {
		if got := FormatRelative(tc.in); got != tc.want {
			t.Errorf("FormatRelative(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
