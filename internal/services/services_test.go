package services

import (
	"context"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/marketplace-backend/internal/data/aggregates"
	"github.com/yungbote/marketplace-backend/internal/data/repos"
	"github.com/yungbote/marketplace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/ctxutil"
	"github.com/yungbote/marketplace-backend/internal/platform/idempotency"
	"github.com/yungbote/marketplace-backend/internal/realtime"
)

type serviceFixture struct {
	db     *gorm.DB
	events *eventRecorder

	auth     AuthService
	users    UserService
	stores   StoreService
	catalog  CategoryService
	products ProductService
	cart     CartService
	orders   OrderService
	reports  ReportService
	stats    StatsService
}

type eventRecorder struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (r *eventRecorder) record(ev realtime.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *eventRecorder) snapshot() []realtime.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]realtime.Event(nil), r.events...)
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	base := aggregates.BaseDeps{DB: db, Log: log}

	userRepo := repos.NewUserRepo(db, log)
	storeRepo := repos.NewStoreRepo(db, log)
	categoryRepo := repos.NewCategoryRepo(db, log)
	productRepo := repos.NewProductRepo(db, log)
	cartRepo := repos.NewCartRepo(db, log)
	cartItemRepo := repos.NewCartItemRepo(db, log)
	orderRepo := repos.NewOrderRepo(db, log)
	reportRepo := repos.NewReportRepo(db, log)

	bus := realtime.NewMemoryBus()
	rec := &eventRecorder{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := bus.Subscribe(ctx, rec.record); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	cartAgg := aggregates.NewCartAggregate(aggregates.CartAggregateDeps{
		Base: base, Carts: cartRepo, CartItems: cartItemRepo, Products: productRepo, Stores: storeRepo,
	})
	return &serviceFixture{
		db:       db,
		events:   rec,
		auth:     NewAuthService(log, userRepo, "test-secret", 0),
		users:    NewUserService(log, userRepo),
		stores:   NewStoreService(log, storeRepo),
		catalog:  NewCategoryService(log, categoryRepo),
		products: NewProductService(log, productRepo, storeRepo, categoryRepo),
		cart:     NewCartService(log, cartRepo, cartItemRepo, cartAgg),
		orders: NewOrderService(log, OrderServiceDeps{
			Orders: orderRepo,
			Stores: storeRepo,
			Checkout: aggregates.NewCheckoutAggregate(aggregates.CheckoutAggregateDeps{
				Base: base, Carts: cartRepo, CartItems: cartItemRepo, Products: productRepo, Stores: storeRepo, Orders: orderRepo,
			}),
			OrderStatus: aggregates.NewOrderStatusAggregate(aggregates.OrderStatusAggregateDeps{
				Base: base, Orders: orderRepo, Stores: storeRepo,
			}),
			Idempotency: idempotency.NewMemoryStore(0),
			Events:      bus,
		}),
		reports: NewReportService(log, reportRepo, aggregates.NewReportAggregate(aggregates.ReportAggregateDeps{
			Base: base, Reports: reportRepo, Users: userRepo, Products: productRepo, Stores: storeRepo,
		})),
		stats: NewStatsService(log, repos.NewStatsRepo(db, log)),
	}
}

func as(u *types.User) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: u.ID, Role: u.Role})
}
