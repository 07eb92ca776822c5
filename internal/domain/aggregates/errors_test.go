package aggregates

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestErrorFormatting(t *testing.T) {
	err := NewError(CodeNotFound, "Cart.AddItem", "product missing", nil)
	if got := err.Error(); got != "Cart.AddItem: product missing (not_found)" {
		t.Fatalf("Error(): got=%q", got)
	}
	if got := NewError(CodeInternal, "", "", nil).Error(); got != "internal" {
		t.Fatalf("bare Error(): got=%q", got)
	}
}

func TestCodeHelpersSeeThroughWrapping(t *testing.T) {
	base := NewError(CodeStockConflict, "Checkout", "lost race", nil)
	wrapped := fmt.Errorf("checkout: %w", base)
	if !IsCode(wrapped, CodeStockConflict) {
		t.Fatalf("IsCode: expected stock_conflict through wrap")
	}
	if CodeOf(wrapped) != CodeStockConflict {
		t.Fatalf("CodeOf: want=%s got=%s", CodeStockConflict, CodeOf(wrapped))
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatalf("CodeOf: plain error should have no code")
	}
}

func TestProductErrorCarriesProductID(t *testing.T) {
	id := uuid.New()
	err := NewProductError(CodeInsufficientStock, "Checkout", id, "only 1 left")
	aggErr, ok := As(err)
	if !ok {
		t.Fatalf("As: expected aggregate error")
	}
	if aggErr.ProductID != id.String() {
		t.Fatalf("ProductID: want=%s got=%s", id, aggErr.ProductID)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("Wrap(nil) must be nil")
	}
}
