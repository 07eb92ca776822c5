package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is a seller-owned storefront. City and regency drive buyer-side filtering.
type Store struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"seller_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	City        string    `gorm:"column:city;not null;index" json:"city"`
	Regency     string    `gorm:"column:regency;not null;index" json:"regency"`
	FullAddress string    `gorm:"column:full_address;not null" json:"full_address"`
	PhoneNumber *string   `gorm:"column:phone_number" json:"phone_number,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Store) TableName() string { return "store" }

func (s *Store) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
