package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/marketplace-backend/internal/data/repos/cart"
	"github.com/yungbote/marketplace-backend/internal/data/repos/catalog"
	"github.com/yungbote/marketplace-backend/internal/data/repos/orders"
	"github.com/yungbote/marketplace-backend/internal/data/repos/reports"
	"github.com/yungbote/marketplace-backend/internal/data/repos/stats"
	"github.com/yungbote/marketplace-backend/internal/data/repos/user"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type StoreRepo = catalog.StoreRepo
type StoreFilter = catalog.StoreFilter
type CategoryRepo = catalog.CategoryRepo
type ProductRepo = catalog.ProductRepo
type ProductFilter = catalog.ProductFilter

type CartRepo = cart.CartRepo
type CartItemRepo = cart.CartItemRepo

type OrderRepo = orders.OrderRepo
type OrderListOptions = orders.ListOptions

type ReportRepo = reports.ReportRepo

type StatsRepo = stats.StatsRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewStoreRepo(db *gorm.DB, baseLog *logger.Logger) StoreRepo {
	return catalog.NewStoreRepo(db, baseLog)
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
	return catalog.NewProductRepo(db, baseLog)
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return cart.NewCartRepo(db, baseLog)
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return cart.NewCartItemRepo(db, baseLog)
}

func NewOrderRepo(db *gorm.DB, baseLog *logger.Logger) OrderRepo {
	return orders.NewOrderRepo(db, baseLog)
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return reports.NewReportRepo(db, baseLog)
}

func NewStatsRepo(db *gorm.DB, baseLog *logger.Logger) StatsRepo {
	return stats.NewStatsRepo(db, baseLog)
}
