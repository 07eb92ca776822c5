package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/marketplace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

func TestStoreRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewStoreRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	seller := testutil.SeedSeller(t, db)

	created, err := repo.Create(dbc, []*types.Store{
		{SellerID: seller.ID, Name: "Toko A", City: "Bandung", Regency: "Bandung", FullAddress: "x", IsActive: true},
		{SellerID: seller.ID, Name: "Toko B", City: "Jakarta", Regency: "Jakarta Selatan", FullAddress: "y", IsActive: true},
	})
	if err != nil || len(created) != 2 {
		t.Fatalf("Create: got=%d err=%v", len(created), err)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.Name != "Toko A" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	mine, err := repo.ListBySeller(dbc, seller.ID)
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListBySeller: got=%d err=%v", len(mine), err)
	}

	if err := repo.UpdateFields(dbc, created[1].ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	active, err := repo.List(dbc, StoreFilter{ActiveOnly: true})
	if err != nil || len(active) != 1 || active[0].ID != created[0].ID {
		t.Fatalf("List active: got=%d err=%v", len(active), err)
	}
	byCity, err := repo.List(dbc, StoreFilter{City: "bandung"})
	if err != nil || len(byCity) != 1 {
		t.Fatalf("List by city: got=%d err=%v", len(byCity), err)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID missing: want nil,nil got=%+v,%v", missing, err)
	}
}

func TestCategoryRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewCategoryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	c, err := repo.Create(dbc, &types.Category{Name: "Electronics"})
	if err != nil || c.ID == uuid.Nil {
		t.Fatalf("Create: got=%+v err=%v", c, err)
	}
	exists, err := repo.NameExists(dbc, " electronics ")
	if err != nil || !exists {
		t.Fatalf("NameExists: want=true got=%v err=%v", exists, err)
	}
	if _, err := repo.Create(dbc, &types.Category{Name: "Electronics"}); err == nil {
		t.Fatalf("Create duplicate: expected unique violation")
	}
	if _, err := repo.Create(dbc, &types.Category{Name: "Books"}); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	list, err := repo.List(dbc)
	if err != nil || len(list) != 2 || list[0].Name != "Books" {
		t.Fatalf("List: got=%v err=%v", list, err)
	}
}

func TestProductRepoSearch(t *testing.T) {
	db := testutil.DB(t)
	repo := NewProductRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	seller := testutil.SeedSeller(t, db)
	store := testutil.SeedStore(t, db, seller.ID)
	closed := testutil.SeedStore(t, db, seller.ID)
	cat := testutil.SeedCategory(t, db)

	phone := testutil.SeedProduct(t, db, store.ID, cat.ID, "100.00", 3)
	if err := repo.UpdateFields(dbc, phone.ID, map[string]any{"name": "Smart Phone X"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	hidden := testutil.SeedProduct(t, db, store.ID, cat.ID, "5.00", 3)
	if err := repo.UpdateFields(dbc, hidden.ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	orphan := testutil.SeedProduct(t, db, closed.ID, cat.ID, "5.00", 3)
	if err := db.Model(&types.Store{}).Where("id = ?", closed.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("close store: %v", err)
	}

	hits, err := repo.Search(dbc, ProductFilter{Query: "phone", ActiveOnly: true})
	if err != nil || len(hits) != 1 || hits[0].ID != phone.ID {
		t.Fatalf("Search query: got=%v err=%v", hits, err)
	}
	all, err := repo.Search(dbc, ProductFilter{ActiveOnly: true})
	if err != nil || len(all) != 1 {
		t.Fatalf("Search active: got=%d err=%v", len(all), err)
	}
	for _, p := range all {
		if p.ID == hidden.ID || p.ID == orphan.ID {
			t.Fatalf("Search active leaked %s", p.ID)
		}
	}
	byStore, err := repo.ListByStore(dbc, store.ID, false)
	if err != nil || len(byStore) != 2 {
		t.Fatalf("ListByStore: got=%d err=%v", len(byStore), err)
	}

	got, err := repo.GetByID(dbc, phone.ID)
	if err != nil || got == nil || !got.Price.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
}

func TestProductRepoDecrementStock(t *testing.T) {
	db := testutil.DB(t)
	repo := NewProductRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	seller := testutil.SeedSeller(t, db)
	store := testutil.SeedStore(t, db, seller.ID)
	cat := testutil.SeedCategory(t, db)
	p := testutil.SeedProduct(t, db, store.ID, cat.ID, "10.00", 3)

	ok, err := repo.DecrementStock(dbc, p.ID, 2)
	if err != nil || !ok {
		t.Fatalf("DecrementStock: ok=%v err=%v", ok, err)
	}
	if got := testutil.Stock(t, db, p.ID); got != 1 {
		t.Fatalf("stock: want=1 got=%d", got)
	}

	ok, err = repo.DecrementStock(dbc, p.ID, 2)
	if err != nil || ok {
		t.Fatalf("DecrementStock over: want false got ok=%v err=%v", ok, err)
	}
	if got := testutil.Stock(t, db, p.ID); got != 1 {
		t.Fatalf("stock after refused decrement: want=1 got=%d", got)
	}

	if err := repo.UpdateFields(dbc, p.ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	ok, err = repo.DecrementStock(dbc, p.ID, 1)
	if err != nil || ok {
		t.Fatalf("DecrementStock inactive: want false got ok=%v err=%v", ok, err)
	}
}

func TestProductRepoDecrementStockInactiveStore(t *testing.T) {
	db := testutil.DB(t)
	repo := NewProductRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}
	seller := testutil.SeedSeller(t, db)
	store := testutil.SeedStore(t, db, seller.ID)
	cat := testutil.SeedCategory(t, db)
	p := testutil.SeedProduct(t, db, store.ID, cat.ID, "10.00", 3)

	if err := db.Model(&types.Store{}).Where("id = ?", store.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate store: %v", err)
	}
	ok, err := repo.DecrementStock(dbc, p.ID, 1)
	if err != nil || ok {
		t.Fatalf("DecrementStock closed store: want false got ok=%v err=%v", ok, err)
	}
	if got := testutil.Stock(t, db, p.ID); got != 3 {
		t.Fatalf("stock: want=3 got=%d", got)
	}
}
