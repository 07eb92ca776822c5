package logger

import "testing"

func TestSanitizeRedactsCredentialsAndContact(t *testing.T) {
	l := &Logger{redact: true}
	out := l.sanitize([]any{
		"password", "hunter22",
		"phone_number", "+62 811",
		"shipping_address", "Jl. Merdeka 1",
		"order_id", "abc",
	})
	if len(out) != 8 {
		t.Fatalf("len: want=8 got=%d", len(out))
	}
	for _, i := range []int{1, 3, 5} {
		if out[i] != "[REDACTED]" {
			t.Fatalf("value %v: want=[REDACTED] got=%v", out[i-1], out[i])
		}
	}
	if out[7] != "abc" {
		t.Fatalf("order_id: want=abc got=%v", out[7])
	}
}

func TestSanitizeHashesIdempotencyKey(t *testing.T) {
	l := &Logger{redact: true}
	out := l.sanitize([]any{"idempotency_key", "k-1"})
	got, ok := out[1].(string)
	if !ok || len(got) != len("hash:")+12 {
		t.Fatalf("idempotency_key: unexpected value %v", out[1])
	}
}

func TestSanitizeDisabledPassesThrough(t *testing.T) {
	l := &Logger{redact: false}
	out := l.sanitize([]any{"password", "x"})
	if out[1] != "x" {
		t.Fatalf("password: want=x got=%v", out[1])
	}
}

func TestSanitizeOddKeyValues(t *testing.T) {
	l := &Logger{redact: true}
	out := l.sanitize([]any{"a", 1, "dangling"})
	if len(out) != 3 || out[2] != "dangling" {
		t.Fatalf("unexpected output: %v", out)
	}
}
