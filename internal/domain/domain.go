package domain

import (
	"github.com/yungbote/marketplace-backend/internal/domain/cart"
	"github.com/yungbote/marketplace-backend/internal/domain/catalog"
	"github.com/yungbote/marketplace-backend/internal/domain/orders"
	"github.com/yungbote/marketplace-backend/internal/domain/reports"
	"github.com/yungbote/marketplace-backend/internal/domain/user"
)

type User = user.User

type Store = catalog.Store
type Category = catalog.Category
type Product = catalog.Product

type Cart = cart.Cart
type CartItem = cart.CartItem
type CartLine = cart.Line

type Order = orders.Order
type OrderItem = orders.OrderItem

type UserReport = reports.UserReport

// Models lists every persisted table in migration order.
func Models() []any {
	return []any{
		&User{},
		&Store{},
		&Category{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&UserReport{},
	}
}
