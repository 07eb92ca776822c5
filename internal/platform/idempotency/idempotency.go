// Package idempotency remembers the outcome of client-keyed requests so a
// retried request returns the first result instead of repeating side effects.
package idempotency

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	StatePending   = "pending"
	StateCompleted = "completed"
)

// ErrInFlight is returned by Begin when another request holds the key.
var ErrInFlight = errors.New("idempotency key is already in flight")

type Record struct {
	State     string    `json:"state"`
	Result    []byte    `json:"result,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store claims keys for the duration of one request.
//
// Begin returns (nil, nil) when the caller now owns the key and must finish
// with Complete or Release. It returns the stored record when the key already
// completed, and ErrInFlight while another owner holds it.
type Store interface {
	Begin(ctx context.Context, key string) (*Record, error)
	Complete(ctx context.Context, key string, result []byte) error
	Release(ctx context.Context, key string) error
}

// Key scopes a client-supplied key to an operation and principal.
func Key(op, principal, clientKey string) string {
	return strings.Join([]string{"idem", op, principal, strings.TrimSpace(clientKey)}, ":")
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
