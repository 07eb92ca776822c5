package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/domain/catalog"
	"github.com/yungbote/marketplace-backend/internal/domain/user"
)

func SeedUser(tb testing.TB, db *gorm.DB, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     uuid.NewString()[:8] + "@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Role:      role,
		IsActive:  true,
	}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedBuyer(tb testing.TB, db *gorm.DB) *types.User {
	tb.Helper()
	return SeedUser(tb, db, user.RoleBuyer)
}

func SeedSeller(tb testing.TB, db *gorm.DB) *types.User {
	tb.Helper()
	return SeedUser(tb, db, user.RoleSeller)
}

func SeedStore(tb testing.TB, db *gorm.DB, sellerID uuid.UUID) *types.Store {
	tb.Helper()
	s := &types.Store{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        "store",
		City:        "Bandung",
		Regency:     "Bandung",
		FullAddress: "Jl. Asia Afrika 1",
		IsActive:    true,
	}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed store: %v", err)
	}
	return s
}

func SeedCategory(tb testing.TB, db *gorm.DB) *types.Category {
	tb.Helper()
	c := &types.Category{ID: uuid.New(), Name: "cat-" + uuid.NewString()[:8]}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

// SeedProduct creates an active product with the given price and stock.
func SeedProduct(tb testing.TB, db *gorm.DB, storeID, categoryID uuid.UUID, price string, stock int) *types.Product {
	tb.Helper()
	p := &types.Product{
		ID:            uuid.New(),
		StoreID:       storeID,
		CategoryID:    categoryID,
		Name:          "product-" + uuid.NewString()[:8],
		Description:   "desc",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
		ImageURLs:     catalog.EncodeImages(nil),
		IsActive:      true,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

// Stock reads a product's current stock straight from the table.
func Stock(tb testing.TB, db *gorm.DB, productID uuid.UUID) int {
	tb.Helper()
	var p types.Product
	if err := db.Where("id = ?", productID).First(&p).Error; err != nil {
		tb.Fatalf("load product %s: %v", productID, err)
	}
	return p.StockQuantity
}

func Count(tb testing.TB, db *gorm.DB, model any) int64 {
	tb.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		tb.Fatalf("count %T: %v", model, err)
	}
	return n
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrString(v string) *string { return &v }
