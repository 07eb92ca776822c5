package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/domain/catalog"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CreateProductInput struct {
	StoreID       uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	ImageURLs     []string
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	CategoryID    *uuid.UUID
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int
	ImageURLs     *[]string
	IsActive      *bool
}

type SearchProductsInput struct {
	Query      string
	CategoryID uuid.UUID
	City       string
	Regency    string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Limit      int
	Offset     int
}

type ProductService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*types.Product, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error)
	ListProductsByStore(ctx context.Context, storeID uuid.UUID) ([]*types.Product, error)
	SearchProducts(ctx context.Context, in SearchProductsInput) ([]*types.Product, error)
}

type productService struct {
	log          *logger.Logger
	productRepo  repos.ProductRepo
	storeRepo    repos.StoreRepo
	categoryRepo repos.CategoryRepo
}

func NewProductService(log *logger.Logger, productRepo repos.ProductRepo, storeRepo repos.StoreRepo, categoryRepo repos.CategoryRepo) ProductService {
	return &productService{
		log:          log.With("service", "ProductService"),
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
	}
}

func validateImageURLs(op string, urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if err := validate.Var(raw, "required,http_url"); err != nil {
			return nil, validationError(op, fmt.Sprintf("image url %q must be an absolute http(s) url", raw))
		}
		out = append(out, raw)
	}
	return out, nil
}

func validatePrice(op string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return validationError(op, "price must be greater than zero")
	}
	if !price.Equal(price.Round(2)) {
		return validationError(op, "price has more than two decimal places")
	}
	return nil
}

func (ps *productService) CreateProduct(ctx context.Context, in CreateProductInput) (*types.Product, error) {
	const op = "Product.Create"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" {
		return nil, validationError(op, "name is required")
	}
	if err := validatePrice(op, in.Price); err != nil {
		return nil, err
	}
	if in.StockQuantity < 0 {
		return nil, validationError(op, "stock_quantity must not be negative")
	}
	images, err := validateImageURLs(op, in.ImageURLs)
	if err != nil {
		return nil, err
	}

	dbc := dbctx.Context{Ctx: ctx}
	store, err := ps.storeRepo.GetByID(dbc, in.StoreID)
	if err != nil {
		return nil, internalError(op, err)
	}
	if store == nil {
		return nil, notFoundError(op, "store", in.StoreID)
	}
	if err := authz.Authorize(caller, authz.ActionManageProduct, authz.Resource{SellerID: store.SellerID}); err != nil {
		return nil, err
	}
	if !store.IsActive {
		return nil, domainagg.NewError(domainagg.CodePreconditionFailed, op, "store is not active", nil)
	}
	if err := ps.requireCategory(dbc, op, in.CategoryID); err != nil {
		return nil, err
	}

	p := &types.Product{
		StoreID:       store.ID,
		CategoryID:    in.CategoryID,
		Name:          name,
		Description:   description,
		Price:         in.Price.Round(2),
		StockQuantity: in.StockQuantity,
		ImageURLs:     catalog.EncodeImages(images),
		IsActive:      true,
	}
	created, err := ps.productRepo.Create(dbc, []*types.Product{p})
	if err != nil {
		return nil, internalError(op, err)
	}
	ps.log.Info("Product created", "product_id", p.ID, "store_id", store.ID)
	return created[0], nil
}

func (ps *productService) requireCategory(dbc dbctx.Context, op string, id uuid.UUID) error {
	c, err := ps.categoryRepo.GetByID(dbc, id)
	if err != nil {
		return internalError(op, err)
	}
	if c == nil {
		return notFoundError(op, "category", id)
	}
	return nil
}

// loadOwned returns the product and its store's seller id.
func (ps *productService) loadOwned(dbc dbctx.Context, op string, id uuid.UUID) (*types.Product, uuid.UUID, error) {
	p, err := ps.productRepo.GetByID(dbc, id)
	if err != nil {
		return nil, uuid.Nil, internalError(op, err)
	}
	if p == nil {
		return nil, uuid.Nil, notFoundError(op, "product", id)
	}
	store, err := ps.storeRepo.GetByID(dbc, p.StoreID)
	if err != nil {
		return nil, uuid.Nil, internalError(op, err)
	}
	if store == nil {
		return nil, uuid.Nil, notFoundError(op, "store", p.StoreID)
	}
	return p, store.SellerID, nil
}

func (ps *productService) UpdateProduct(ctx context.Context, id uuid.UUID, in UpdateProductInput) (*types.Product, error) {
	const op = "Product.Update"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	p, sellerID, err := ps.loadOwned(dbc, op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionManageProduct, authz.Resource{SellerID: sellerID}); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, validationError(op, "name must not be empty")
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if err := validatePrice(op, *in.Price); err != nil {
			return nil, err
		}
		updates["price"] = in.Price.Round(2)
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, validationError(op, "stock_quantity must not be negative")
		}
		updates["stock_quantity"] = *in.StockQuantity
	}
	if in.ImageURLs != nil {
		images, err := validateImageURLs(op, *in.ImageURLs)
		if err != nil {
			return nil, err
		}
		updates["image_urls"] = catalog.EncodeImages(images)
	}
	if in.CategoryID != nil {
		if err := ps.requireCategory(dbc, op, *in.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return p, nil
	}
	if err := ps.productRepo.UpdateFields(dbc, p.ID, updates); err != nil {
		return nil, internalError(op, err)
	}
	return ps.productRepo.GetByID(dbc, p.ID)
}

func (ps *productService) DeactivateProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	const op = "Product.Deactivate"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	p, sellerID, err := ps.loadOwned(dbc, op, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionDeactivateItem, authz.Resource{SellerID: sellerID}); err != nil {
		return nil, err
	}
	if err := ps.productRepo.UpdateFields(dbc, p.ID, map[string]any{"is_active": false}); err != nil {
		return nil, internalError(op, err)
	}
	p.IsActive = false
	ps.log.Info("Product deactivated", "product_id", p.ID, "by", caller.UserID)
	return p, nil
}

func (ps *productService) GetProduct(ctx context.Context, id uuid.UUID) (*types.Product, error) {
	const op = "Product.Get"
	p, err := ps.productRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, internalError(op, err)
	}
	if p == nil {
		return nil, notFoundError(op, "product", id)
	}
	return p, nil
}

func (ps *productService) ListProductsByStore(ctx context.Context, storeID uuid.UUID) ([]*types.Product, error) {
	out, err := ps.productRepo.ListByStore(dbctx.Context{Ctx: ctx}, storeID, true)
	if err != nil {
		return nil, internalError("Product.ListByStore", err)
	}
	return out, nil
}

func (ps *productService) SearchProducts(ctx context.Context, in SearchProductsInput) ([]*types.Product, error) {
	const op = "Product.Search"
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return nil, validationError(op, "min_price must not exceed max_price")
	}
	limit, offset := clampPage(in.Limit, in.Offset)
	out, err := ps.productRepo.Search(dbctx.Context{Ctx: ctx}, repos.ProductFilter{
		Query:      strings.TrimSpace(in.Query),
		CategoryID: in.CategoryID,
		City:       strings.TrimSpace(in.City),
		Regency:    strings.TrimSpace(in.Regency),
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		ActiveOnly: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, internalError(op, err)
	}
	return out, nil
}
