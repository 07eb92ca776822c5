package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorderGroupsByOperation(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("Commerce.Checkout.CommitStore", "success", time.Millisecond)
	h.ObserveOperation("Commerce.Checkout.CommitStore", "stock_conflict", time.Millisecond)
	h.ObserveOperation("Commerce.Checkout", "stock_conflict", 2*time.Millisecond)
	h.IncConflict("Commerce.Checkout.CommitStore")
	h.IncRetry("Commerce.Cart.AddItem")

	got := h.Statuses("Commerce.Checkout.CommitStore")
	if len(got) != 2 || got[0] != "success" || got[1] != "stock_conflict" {
		t.Fatalf("unexpected partition statuses: %v", got)
	}
	if n := h.ConflictCount("Commerce.Checkout.CommitStore"); n != 1 {
		t.Fatalf("conflicts for commit: want=1 got=%d", n)
	}
	if n := h.ConflictCount("Commerce.Checkout"); n != 0 {
		t.Fatalf("conflicts for checkout: want=0 got=%d", n)
	}
	if len(h.Retries) != 1 || h.Retries[0] != "Commerce.Cart.AddItem" {
		t.Fatalf("unexpected retries: %v", h.Retries)
	}
}
