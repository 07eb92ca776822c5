package aggregates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/marketplace-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

func TestGormTxRunnerRetriesTransientFailures(t *testing.T) {
	runner := &gormTxRunner{db: testutil.DB(t), attempts: 3}
	calls := 0
	err := runner.InTx(context.Background(), func(dbc dbctx.Context) error {
		calls++
		require.NotNil(t, dbc.Tx)
		if calls < 3 {
			return RetryableError("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestGormTxRunnerGivesUpAfterAttempts(t *testing.T) {
	runner := &gormTxRunner{db: testutil.DB(t), attempts: 2}
	calls := 0
	err := runner.InTx(context.Background(), func(dbctx.Context) error {
		calls++
		return RetryableError("deadlock detected")
	})
	require.Error(t, err)
	require.Equal(t, 2, calls)
}

func TestGormTxRunnerDoesNotRetryDomainErrors(t *testing.T) {
	runner := &gormTxRunner{db: testutil.DB(t), attempts: 3}
	calls := 0
	err := runner.InTx(context.Background(), func(dbctx.Context) error {
		calls++
		return domainagg.NewError(domainagg.CodeStockConflict, "Commerce.Checkout.CommitStore", "stock moved", nil)
	})
	require.True(t, domainagg.IsCode(err, domainagg.CodeStockConflict))
	require.Equal(t, 1, calls)

	calls = 0
	err = runner.InTx(context.Background(), func(dbctx.Context) error {
		calls++
		return ConflictError("cart changed during checkout")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestGormTxRunnerStopsOnCancelledContext(t *testing.T) {
	runner := &gormTxRunner{db: testutil.DB(t), attempts: 3}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := runner.InTx(ctx, func(dbctx.Context) error {
		calls++
		cancel()
		return RetryableError("lock timeout")
	})
	require.Error(t, err)
	require.Equal(t, 1, calls)
}
