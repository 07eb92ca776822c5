package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	"github.com/yungbote/marketplace-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/user"
)

func TestCreateStoreRequiresSeller(t *testing.T) {
	f := newServiceFixture(t)
	buyer := testutil.SeedBuyer(t, f.db)
	seller := testutil.SeedSeller(t, f.db)
	in := CreateStoreInput{Name: "Toko Kita", City: "Bandung", Regency: "Bandung", FullAddress: "Jl. Riau 3"}

	_, err := f.stores.CreateStore(as(buyer), in)
	require.True(t, domainagg.IsCode(err, domainagg.CodeForbidden), "buyer: got %v", err)

	missing := in
	missing.City = "  "
	_, err = f.stores.CreateStore(as(seller), missing)
	require.True(t, domainagg.IsCode(err, domainagg.CodeValidation), "blank city: got %v", err)

	s, err := f.stores.CreateStore(as(seller), in)
	require.NoError(t, err)
	require.Equal(t, seller.ID, s.SellerID)
	require.True(t, s.IsActive)

	mine, err := f.stores.ListStoresBySeller(as(seller), seller.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}

func TestDeactivateStoreHidesStoreAndBlocksCart(t *testing.T) {
	f := newServiceFixture(t)
	seller := testutil.SeedSeller(t, f.db)
	other := testutil.SeedSeller(t, f.db)
	buyer := testutil.SeedBuyer(t, f.db)
	store := testutil.SeedStore(t, f.db, seller.ID)
	kept := testutil.SeedStore(t, f.db, other.ID)
	cat := testutil.SeedCategory(t, f.db)
	p := testutil.SeedProduct(t, f.db, store.ID, cat.ID, "5.00", 2)

	_, err := f.stores.DeactivateStore(as(other), store.ID)
	require.True(t, domainagg.IsCode(err, domainagg.CodeForbidden), "foreign seller: got %v", err)

	off, err := f.stores.DeactivateStore(as(seller), store.ID)
	require.NoError(t, err)
	require.False(t, off.IsActive)

	admin := testutil.SeedUser(t, f.db, user.RoleAdmin)
	_, err = f.stores.DeactivateStore(as(admin), store.ID)
	require.NoError(t, err, "deactivating twice is a no-op")

	listed, err := f.stores.ListStores(as(buyer), repos.StoreFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, kept.ID, listed[0].ID)

	_, err = f.cart.AddToCart(as(buyer), p.ID, 1)
	require.True(t, domainagg.IsCode(err, domainagg.CodeProductUnavailable), "inactive store: got %v", err)
}
