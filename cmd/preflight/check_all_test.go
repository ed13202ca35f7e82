package main

import (
	"testing"
)

func TestLastGreenHashRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if got := lastGreenHash(dir); got != "" {
		t.Errorf("expected empty hash before first green run, got %q", got)
	}

	if err := writeLastGreenHash(dir, "deadbeef"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := lastGreenHash(dir); got != "deadbeef" {
		t.Errorf("expected deadbeef, got %q", got)
	}

	if err := writeLastGreenHash(dir, "cafef00d"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := lastGreenHash(dir); got != "cafef00d" {
		t.Errorf("expected cafef00d, got %q", got)
	}
}
