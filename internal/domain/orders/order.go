package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order settles one buyer's purchase from exactly one store.
// TotalAmount is the sum of its items' PriceAtTime × Quantity.
type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"buyer_id"`
	StoreID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	TotalAmount     decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null" json:"total_amount"`
	Status          string          `gorm:"column:status;type:varchar(16);not null;index" json:"status"`
	ShippingAddress string          `gorm:"column:shipping_address;not null" json:"shipping_address"`
	PhoneNumber     string          `gorm:"column:phone_number;not null" json:"phone_number"`
	Notes           *string         `gorm:"column:notes" json:"notes,omitempty"`

	Items []*OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "store_order" }

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem freezes the product price at checkout. Immutable once written.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	PriceAtTime decimal.Decimal `gorm:"column:price_at_time;type:numeric(10,2);not null" json:"price_at_time"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string { return "store_order_item" }

func (oi *OrderItem) BeforeCreate(*gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// Subtotal is PriceAtTime × Quantity.
func (oi *OrderItem) Subtotal() decimal.Decimal {
	return oi.PriceAtTime.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}
