package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is created lazily on the buyer's first add; one per buyer.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"buyer_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Cart) TableName() string { return "cart" }

func (c *Cart) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem holds at most one row per (cart, product); repeated adds merge.
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_product,priority:1" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_item_cart_product,priority:2;index" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	AddedAt   time.Time `gorm:"column:added_at;not null;autoCreateTime" json:"added_at"`
}

func (CartItem) TableName() string { return "cart_item" }

func (ci *CartItem) BeforeCreate(*gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}

// Line is a cart item joined with live product and store state.
// Validity is re-checked at checkout, so a Line may reference an
// inactive or under-stocked product.
type Line struct {
	CartItemID    uuid.UUID       `json:"cart_item_id"`
	CartID        uuid.UUID       `json:"cart_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int             `json:"quantity"`
	AddedAt       time.Time       `json:"added_at"`
	ProductName   string          `json:"product_name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	ProductActive bool            `json:"product_active"`
	StoreID       uuid.UUID       `json:"store_id"`
	StoreActive   bool            `json:"store_active"`
	// ProductFound is false when the referenced product row no longer exists.
	ProductFound bool `json:"-"`
}

// Subtotal is the live price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Purchasable reports whether the product and its store are both active.
func (l Line) Purchasable() bool {
	return l.ProductFound && l.ProductActive && l.StoreActive
}
