package common

import "testing"

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "fallback"); got != "fallback" {
		t.Fatalf("Coalesce = %q, want fallback", got)
	}
	if got := Coalesce("set", "fallback"); got != "set" {
		t.Fatalf("Coalesce = %q, want set", got)
	}
	if got := Coalesce(0, 0, 3); got != 3 {
		t.Fatalf("Coalesce = %d, want 3", got)
	}
	if got := Coalesce[int](); got != 0 {
		t.Fatalf("Coalesce of nothing = %d, want zero value", got)
	}
}
