package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product belongs to one store and one category.
// StockQuantity is only decremented by checkout and never goes negative.
type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	StoreID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Name          string          `gorm:"column:name;not null;index" json:"name"`
	Description   string          `gorm:"column:description;not null" json:"description"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	StockQuantity int             `gorm:"column:stock_quantity;not null" json:"stock_quantity"`
	ImageURLs     datatypes.JSON  `gorm:"column:image_urls" json:"image_urls"`
	IsActive      bool            `gorm:"column:is_active;not null;index" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "product" }

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if len(p.ImageURLs) == 0 {
		p.ImageURLs = datatypes.JSON([]byte("[]"))
	}
	return nil
}

// Images decodes the stored image URL list.
func (p *Product) Images() []string {
	var out []string
	if p == nil || len(p.ImageURLs) == 0 {
		return out
	}
	_ = json.Unmarshal(p.ImageURLs, &out)
	return out
}

// EncodeImages builds the JSON column value for a URL list.
func EncodeImages(urls []string) datatypes.JSON {
	if urls == nil {
		urls = []string{}
	}
	raw, _ := json.Marshal(urls)
	return datatypes.JSON(raw)
}
