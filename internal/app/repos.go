package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type Repos struct {
	User     repos.UserRepo
	Store    repos.StoreRepo
	Category repos.CategoryRepo
	Product  repos.ProductRepo
	Cart     repos.CartRepo
	CartItem repos.CartItemRepo
	Order    repos.OrderRepo
	Report   repos.ReportRepo
	Stats    repos.StatsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Store:    repos.NewStoreRepo(db, log),
		Category: repos.NewCategoryRepo(db, log),
		Product:  repos.NewProductRepo(db, log),
		Cart:     repos.NewCartRepo(db, log),
		CartItem: repos.NewCartItemRepo(db, log),
		Order:    repos.NewOrderRepo(db, log),
		Report:   repos.NewReportRepo(db, log),
		Stats:    repos.NewStatsRepo(db, log),
	}
}
