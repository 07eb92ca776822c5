package orders

import "strings"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: nil,
	StatusCancelled: nil,
}

func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func IsKnownStatus(s string) bool {
	_, ok := transitions[NormalizeStatus(s)]
	return ok
}

// CanTransition reports whether from -> to is a legal move.
// Same-state moves are never legal.
func CanTransition(from, to string) bool {
	for _, next := range transitions[NormalizeStatus(from)] {
		if next == NormalizeStatus(to) {
			return true
		}
	}
	return false
}

func IsTerminal(s string) bool {
	return IsKnownStatus(s) && len(transitions[NormalizeStatus(s)]) == 0
}

// NextStatuses lists the legal targets from s.
func NextStatuses(s string) []string {
	next := transitions[NormalizeStatus(s)]
	out := make([]string, len(next))
	copy(out, next)
	return out
}
