package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/marketplace-backend/internal/http"
	httpH "github.com/yungbote/marketplace-backend/internal/http/handlers"
	httpMW "github.com/yungbote/marketplace-backend/internal/http/middleware"
	"github.com/yungbote/marketplace-backend/internal/observability"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Store    *httpH.StoreHandler
	Category *httpH.CategoryHandler
	Product  *httpH.ProductHandler
	Cart     *httpH.CartHandler
	Order    *httpH.OrderHandler
	Report   *httpH.ReportHandler
	Stats    *httpH.StatsHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Auth:     httpH.NewAuthHandler(s.Auth),
		User:     httpH.NewUserHandler(s.User),
		Store:    httpH.NewStoreHandler(s.Store, s.Product, s.Order),
		Category: httpH.NewCategoryHandler(s.Category),
		Product:  httpH.NewProductHandler(s.Product),
		Cart:     httpH.NewCartHandler(s.Cart),
		Order:    httpH.NewOrderHandler(s.Order),
		Report:   httpH.NewReportHandler(s.Report),
		Stats:    httpH.NewStatsHandler(s.Stats),
	}
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:          log,
		Metrics:      metrics,
		ServiceName:  cfg.Otel.ServiceName,
		TraceEnabled: cfg.Otel.Enabled,
		CORSOrigins:  cfg.CORSAllowOrigins,

		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		UserHandler:     handlers.User,
		StoreHandler:    handlers.Store,
		CategoryHandler: handlers.Category,
		ProductHandler:  handlers.Product,
		CartHandler:     handlers.Cart,
		OrderHandler:    handlers.Order,
		ReportHandler:   handlers.Report,
		StatsHandler:    handlers.Stats,
		HealthHandler:   handlers.Health,
	})
}
