// Package authz is the single capability check applied to every mutating
// marketplace operation before it touches state.
package authz

import (
	"fmt"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/orders"
	"github.com/yungbote/marketplace-backend/internal/domain/user"
)

type Action string

const (
	ActionMutateCart     Action = "cart.mutate"
	ActionCheckout       Action = "cart.checkout"
	ActionReadOrder      Action = "order.read"
	ActionAdvanceOrder   Action = "order.advance"
	ActionCancelOrder    Action = "order.cancel"
	ActionCreateStore    Action = "store.create"
	ActionManageStore    Action = "store.manage"
	ActionManageProduct  Action = "product.manage"
	ActionDeactivateItem Action = "product.deactivate"
	ActionModerate       Action = "platform.moderate"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID uuid.UUID
	Role   string
}

func (c Caller) IsAdmin() bool { return c.Role == user.RoleAdmin }

// Resource carries the ownership facts a decision needs.
// OwnerID is the owning buyer (cart/order), SellerID the owning store's seller.
type Resource struct {
	OwnerID  uuid.UUID
	SellerID uuid.UUID
	Status   string
}

// Authorize returns nil when caller may perform action on res, otherwise a
// forbidden aggregate error. It has no side effects.
func Authorize(c Caller, action Action, res Resource) error {
	if c.UserID == uuid.Nil {
		return deny(action, "missing caller identity")
	}
	switch action {
	case ActionMutateCart, ActionCheckout:
		if c.Role != user.RoleBuyer {
			return deny(action, fmt.Sprintf("role %q cannot use a cart", c.Role))
		}
		if res.OwnerID != uuid.Nil && res.OwnerID != c.UserID {
			return deny(action, "cart belongs to another buyer")
		}
		return nil

	case ActionReadOrder:
		if c.IsAdmin() || res.OwnerID == c.UserID || (c.Role == user.RoleSeller && res.SellerID == c.UserID) {
			return nil
		}
		return deny(action, "order is not visible to caller")

	case ActionAdvanceOrder:
		if c.IsAdmin() || (c.Role == user.RoleSeller && res.SellerID == c.UserID) {
			return nil
		}
		return deny(action, "only the store's seller or an admin may advance an order")

	case ActionCancelOrder:
		if c.IsAdmin() || (c.Role == user.RoleSeller && res.SellerID == c.UserID) {
			return nil
		}
		if res.OwnerID == c.UserID && orders.NormalizeStatus(res.Status) == orders.StatusPending {
			return nil
		}
		return deny(action, "buyers may only cancel their own pending orders")

	case ActionCreateStore:
		if c.Role == user.RoleSeller {
			return nil
		}
		return deny(action, "only sellers may open stores")

	case ActionManageStore, ActionManageProduct:
		if c.Role == user.RoleSeller && res.SellerID == c.UserID {
			return nil
		}
		return deny(action, "store belongs to another seller")

	case ActionDeactivateItem:
		if c.IsAdmin() || (c.Role == user.RoleSeller && res.SellerID == c.UserID) {
			return nil
		}
		return deny(action, "only the owning seller or an admin may deactivate")

	case ActionModerate:
		if c.IsAdmin() {
			return nil
		}
		return deny(action, "admin role required")
	}
	return deny(action, "unknown action")
}

func deny(action Action, reason string) error {
	return domainagg.NewError(domainagg.CodeForbidden, string(action), reason, nil)
}
