package stats

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/marketplace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainorders "github.com/yungbote/marketplace-backend/internal/domain/orders"
	domainuser "github.com/yungbote/marketplace-backend/internal/domain/user"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

func TestStatsRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewStatsRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	rev, err := repo.Revenue(dbc, []string{domainorders.StatusCancelled})
	require.NoError(t, err)
	require.True(t, rev.IsZero())

	buyer := testutil.SeedBuyer(t, db)
	seller := testutil.SeedSeller(t, db)
	store := testutil.SeedStore(t, db, seller.ID)
	cat := testutil.SeedCategory(t, db)
	testutil.SeedProduct(t, db, store.ID, cat.ID, "1.00", 1)

	for _, o := range []struct {
		total  string
		status string
	}{
		{"25.00", domainorders.StatusPending},
		{"5.50", domainorders.StatusDelivered},
		{"100.00", domainorders.StatusCancelled},
	} {
		require.NoError(t, db.Create(&types.Order{
			BuyerID:         buyer.ID,
			StoreID:         store.ID,
			TotalAmount:     decimal.RequireFromString(o.total),
			Status:          o.status,
			ShippingAddress: "x",
			PhoneNumber:     "y",
		}).Error)
	}

	n, err := repo.CountUsers(dbc, "")
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
	n, err = repo.CountUsers(dbc, domainuser.RoleSeller)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, err = repo.CountStores(dbc)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, err = repo.CountProducts(dbc)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, err = repo.CountOrders(dbc)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)

	rev, err = repo.Revenue(dbc, []string{domainorders.StatusCancelled})
	require.NoError(t, err)
	require.True(t, rev.Equal(decimal.RequireFromString("30.50")), "revenue=%s", rev)
}
