package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/marketplace-backend/internal/http/handlers"
	httpMW "github.com/yungbote/marketplace-backend/internal/http/middleware"
	"github.com/yungbote/marketplace-backend/internal/observability"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log          *logger.Logger
	Metrics      *observability.Metrics
	ServiceName  string
	TraceEnabled bool
	CORSOrigins  []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler

	StoreHandler    *httpH.StoreHandler
	CategoryHandler *httpH.CategoryHandler
	ProductHandler  *httpH.ProductHandler
	CartHandler     *httpH.CartHandler
	OrderHandler    *httpH.OrderHandler
	ReportHandler   *httpH.ReportHandler
	StatsHandler    *httpH.StatsHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TraceEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		// Middleware
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Users
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.POST("/users/:id/deactivate", cfg.UserHandler.DeactivateUser)
		}

		// Stores
		if cfg.StoreHandler != nil {
			protected.GET("/stores", cfg.StoreHandler.ListStores)
			protected.POST("/stores", cfg.StoreHandler.CreateStore)
			protected.GET("/stores/:id", cfg.StoreHandler.GetStore)
			protected.POST("/stores/:id/deactivate", cfg.StoreHandler.DeactivateStore)
			protected.GET("/stores/:id/products", cfg.StoreHandler.ListProducts)
			protected.GET("/stores/:id/orders", cfg.StoreHandler.ListOrders)
			protected.GET("/sellers/:id/stores", cfg.StoreHandler.ListStoresBySeller)
		}

		// Catalog
		if cfg.CategoryHandler != nil {
			protected.GET("/categories", cfg.CategoryHandler.ListCategories)
			protected.POST("/categories", cfg.CategoryHandler.CreateCategory)
		}
		if cfg.ProductHandler != nil {
			protected.GET("/products", cfg.ProductHandler.SearchProducts)
			protected.POST("/products", cfg.ProductHandler.CreateProduct)
			protected.GET("/products/:id", cfg.ProductHandler.GetProduct)
			protected.PATCH("/products/:id", cfg.ProductHandler.UpdateProduct)
			protected.POST("/products/:id/deactivate", cfg.ProductHandler.DeactivateProduct)
		}

		// Cart + checkout
		if cfg.CartHandler != nil {
			protected.GET("/cart", cfg.CartHandler.ListItems)
			protected.POST("/cart/items", cfg.CartHandler.AddItem)
			protected.PATCH("/cart/items/:id", cfg.CartHandler.UpdateItem)
			protected.DELETE("/cart/items/:id", cfg.CartHandler.RemoveItem)
		}
		if cfg.OrderHandler != nil {
			protected.POST("/checkout", cfg.OrderHandler.Checkout)
			protected.GET("/orders", cfg.OrderHandler.ListMyOrders)
			protected.GET("/orders/:id", cfg.OrderHandler.GetOrder)
			protected.PATCH("/orders/:id/status", cfg.OrderHandler.UpdateStatus)
		}

		// Moderation
		if cfg.ReportHandler != nil {
			protected.GET("/reports", cfg.ReportHandler.ListReports)
			protected.POST("/reports", cfg.ReportHandler.CreateReport)
			protected.PATCH("/reports/:id/status", cfg.ReportHandler.UpdateStatus)
		}
		if cfg.StatsHandler != nil {
			protected.GET("/admin/stats", cfg.StatsHandler.GetPlatformStats)
		}
	}

	return r
}
