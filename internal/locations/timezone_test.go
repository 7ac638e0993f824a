package locations

import "testing"

func TestTZFResolver(t *testing.T) {
	r := NewTZFResolver()

	got, err := r.TimezoneFor(59.3293, 18.0686)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Europe/Stockholm" {
		t.Fatalf("expected Europe/Stockholm, got %q", got)
	}

	got, err = r.TimezoneFor(40.7128, -74.006)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "America/New_York" {
		t.Fatalf("expected America/New_York, got %q", got)
	}
}
