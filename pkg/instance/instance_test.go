package instance

import "testing"

func TestGetIDPrefersDyno(t *testing.T) {
	t.Setenv("DYNO", "web.1")
	t.Setenv("RIDEFINDERZ_INSTANCE_ID", "pod-7")
	if got := GetID(); got != "web.1" {
		t.Fatalf("expected web.1 got %q", got)
	}
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv("DYNO", "")
	t.Setenv("RIDEFINDERZ_INSTANCE_ID", "pod-7")
	if got := GetID(); got != "pod-7" {
		t.Fatalf("expected pod-7 got %q", got)
	}

	t.Setenv("RIDEFINDERZ_INSTANCE_ID", "")
	if got := GetID(); got != "local" {
		t.Fatalf("expected local got %q", got)
	}
}
