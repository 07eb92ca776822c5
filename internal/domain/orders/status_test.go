package orders

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCanTransition(t *testing.T) {
	all := []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}
	legal := map[[2]string]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusShipped}:   true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusShipped, StatusDelivered}:   true,
	}
	for _, from := range all {
		for _, to := range all {
			want := legal[[2]string{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%s,%s): want=%v got=%v", from, to, want, got)
			}
		}
	}
}

func TestCanTransitionNormalizes(t *testing.T) {
	if !CanTransition(" Pending", "CONFIRMED ") {
		t.Fatalf("expected case-insensitive transition")
	}
	if CanTransition("bogus", StatusConfirmed) {
		t.Fatalf("unknown status should have no transitions")
	}
}

func TestTerminalStates(t *testing.T) {
	if !IsTerminal(StatusDelivered) || !IsTerminal(StatusCancelled) {
		t.Fatalf("delivered and cancelled must be terminal")
	}
	if IsTerminal(StatusPending) || IsTerminal("bogus") {
		t.Fatalf("pending and unknown statuses are not terminal")
	}
	if got := NextStatuses(StatusShipped); len(got) != 1 || got[0] != StatusDelivered {
		t.Fatalf("NextStatuses(shipped): unexpected %v", got)
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	oi := &OrderItem{PriceAtTime: decimal.RequireFromString("10.00"), Quantity: 2}
	if got := oi.Subtotal(); !got.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("subtotal: want=20 got=%s", got)
	}
}
