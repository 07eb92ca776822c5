package aggregates

import (
	"context"

	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
)

// SetCheckoutAfterValidate installs a callback that runs after the cart has
// been validated and before any store partition commits.
func SetCheckoutAfterValidate(agg domainagg.CheckoutAggregate, fn func(ctx context.Context)) {
	agg.(*checkoutAggregate).afterValidate = fn
}
