package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("ENVUTIL_STR", " v ")
	t.Setenv("ENVUTIL_INT", "7")
	t.Setenv("ENVUTIL_BAD_INT", "x")
	t.Setenv("ENVUTIL_BOOL", "on")
	t.Setenv("ENVUTIL_SECS", "30")
	t.Setenv("ENVUTIL_DUR", "2m")
	t.Setenv("ENVUTIL_CSV", "a, ,b")

	if got := String("ENVUTIL_STR", "d"); got != "v" {
		t.Fatalf("String: want=v got=%q", got)
	}
	if got := String("ENVUTIL_MISSING", "d"); got != "d" {
		t.Fatalf("String default: want=d got=%q", got)
	}
	if got := Int("ENVUTIL_INT", 1); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 1); got != 1 {
		t.Fatalf("Int fallback: want=1 got=%d", got)
	}
	if !Bool("ENVUTIL_BOOL", false) {
		t.Fatalf("Bool: want=true")
	}
	if got := Seconds("ENVUTIL_SECS", time.Second); got != 30*time.Second {
		t.Fatalf("Seconds: want=30s got=%s", got)
	}
	if got := Seconds("ENVUTIL_DUR", time.Second); got != 2*time.Minute {
		t.Fatalf("Seconds duration: want=2m got=%s", got)
	}
	got := CSV("ENVUTIL_CSV", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("CSV: unexpected %v", got)
	}
}
