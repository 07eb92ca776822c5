package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/marketplace-backend/internal/data/aggregates"
	"github.com/yungbote/marketplace-backend/internal/observability"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
	"github.com/yungbote/marketplace-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	User     services.UserService
	Store    services.StoreService
	Category services.CategoryService
	Product  services.ProductService
	Cart     services.CartService
	Order    services.OrderService
	Report   services.ReportService
	Stats    services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
	}
	cartAgg := aggregates.NewCartAggregate(aggregates.CartAggregateDeps{
		Base:      base,
		Carts:     r.Cart,
		CartItems: r.CartItem,
		Products:  r.Product,
		Stores:    r.Store,
	})
	checkoutAgg := aggregates.NewCheckoutAggregate(aggregates.CheckoutAggregateDeps{
		Base:        base,
		Carts:       r.Cart,
		CartItems:   r.CartItem,
		Products:    r.Product,
		Stores:      r.Store,
		Orders:      r.Order,
		Parallelism: cfg.CheckoutParallelism,
	})
	orderStatusAgg := aggregates.NewOrderStatusAggregate(aggregates.OrderStatusAggregateDeps{
		Base:   base,
		Orders: r.Order,
		Stores: r.Store,
	})
	reportAgg := aggregates.NewReportAggregate(aggregates.ReportAggregateDeps{
		Base:     base,
		Reports:  r.Report,
		Users:    r.User,
		Products: r.Product,
		Stores:   r.Store,
	})

	return Services{
		Auth:     services.NewAuthService(log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:     services.NewUserService(log, r.User),
		Store:    services.NewStoreService(log, r.Store),
		Category: services.NewCategoryService(log, r.Category),
		Product:  services.NewProductService(log, r.Product, r.Store, r.Category),
		Cart:     services.NewCartService(log, r.Cart, r.CartItem, cartAgg),
		Order: services.NewOrderService(log, services.OrderServiceDeps{
			Orders:      r.Order,
			Stores:      r.Store,
			Checkout:    checkoutAgg,
			OrderStatus: orderStatusAgg,
			Idempotency: c.Idempotency,
			Events:      c.Events,
			Metrics:     metrics,
		}),
		Report: services.NewReportService(log, r.Report, reportAgg),
		Stats:  services.NewStatsService(log, r.Stats),
	}
}
