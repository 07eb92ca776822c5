package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password_hash" json:"-"`
	FirstName   string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"not null;column:last_name" json:"last_name"`
	PhoneNumber *string   `gorm:"column:phone_number" json:"phone_number,omitempty"`

	// buyer|seller|admin
	Role     string `gorm:"column:role;type:varchar(16);not null;index" json:"role"`
	IsActive bool   `gorm:"column:is_active;not null" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether r is one of the three marketplace roles.
func ValidRole(r string) bool {
	switch strings.ToLower(strings.TrimSpace(r)) {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}
