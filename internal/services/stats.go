package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/domain/orders"
	"github.com/yungbote/marketplace-backend/internal/domain/reports"
	"github.com/yungbote/marketplace-backend/internal/domain/user"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type PlatformStats struct {
	TotalUsers     int64           `json:"total_users"`
	TotalBuyers    int64           `json:"total_buyers"`
	TotalSellers   int64           `json:"total_sellers"`
	TotalStores    int64           `json:"total_stores"`
	TotalProducts  int64           `json:"total_products"`
	TotalOrders    int64           `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PendingReports int64           `json:"pending_reports"`
}

type StatsService interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
}

type statsService struct {
	log       *logger.Logger
	statsRepo repos.StatsRepo
}

func NewStatsService(log *logger.Logger, statsRepo repos.StatsRepo) StatsService {
	return &statsService{
		log:       log.With("service", "StatsService"),
		statsRepo: statsRepo,
	}
}

func (ss *statsService) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	const op = "Stats.Platform"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionModerate, authz.Resource{}); err != nil {
		return nil, err
	}

	out := &PlatformStats{}
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	count := func(dst *int64, fn func(dbctx.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(dbc)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}
	count(&out.TotalUsers, func(d dbctx.Context) (int64, error) { return ss.statsRepo.CountUsers(d, "") })
	count(&out.TotalBuyers, func(d dbctx.Context) (int64, error) { return ss.statsRepo.CountUsers(d, user.RoleBuyer) })
	count(&out.TotalSellers, func(d dbctx.Context) (int64, error) { return ss.statsRepo.CountUsers(d, user.RoleSeller) })
	count(&out.TotalStores, ss.statsRepo.CountStores)
	count(&out.TotalProducts, ss.statsRepo.CountProducts)
	count(&out.TotalOrders, ss.statsRepo.CountOrders)
	count(&out.PendingReports, func(d dbctx.Context) (int64, error) {
		return ss.statsRepo.CountReports(d, reports.StatusPending)
	})
	g.Go(func() error {
		rev, err := ss.statsRepo.Revenue(dbc, []string{orders.StatusCancelled})
		if err != nil {
			return err
		}
		out.TotalRevenue = rev
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, internalError(op, err)
	}
	return out, nil
}
