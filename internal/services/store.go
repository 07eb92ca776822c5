package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CreateStoreInput struct {
	Name        string
	Description *string
	City        string
	Regency     string
	FullAddress string
	PhoneNumber *string
}

type StoreService interface {
	CreateStore(ctx context.Context, in CreateStoreInput) (*types.Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*types.Store, error)
	ListStores(ctx context.Context, f repos.StoreFilter) ([]*types.Store, error)
	ListStoresBySeller(ctx context.Context, sellerID uuid.UUID) ([]*types.Store, error)
	// DeactivateStore hides the store and makes its products unpurchasable.
	DeactivateStore(ctx context.Context, id uuid.UUID) (*types.Store, error)
}

type storeService struct {
	log       *logger.Logger
	storeRepo repos.StoreRepo
}

func NewStoreService(log *logger.Logger, storeRepo repos.StoreRepo) StoreService {
	return &storeService{
		log:       log.With("service", "StoreService"),
		storeRepo: storeRepo,
	}
}

func (ss *storeService) CreateStore(ctx context.Context, in CreateStoreInput) (*types.Store, error) {
	const op = "Store.Create"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionCreateStore, authz.Resource{}); err != nil {
		return nil, err
	}
	s := &types.Store{
		SellerID:    caller.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: trimPtr(in.Description),
		City:        strings.TrimSpace(in.City),
		Regency:     strings.TrimSpace(in.Regency),
		FullAddress: strings.TrimSpace(in.FullAddress),
		PhoneNumber: trimPtr(in.PhoneNumber),
		IsActive:    true,
	}
	switch {
	case s.Name == "":
		return nil, validationError(op, "name is required")
	case s.City == "" || s.Regency == "":
		return nil, validationError(op, "city and regency are required")
	case s.FullAddress == "":
		return nil, validationError(op, "full_address is required")
	}
	created, err := ss.storeRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Store{s})
	if err != nil {
		return nil, internalError(op, err)
	}
	ss.log.Info("Store created", "store_id", s.ID, "seller_id", caller.UserID)
	return created[0], nil
}

func (ss *storeService) GetStore(ctx context.Context, id uuid.UUID) (*types.Store, error) {
	const op = "Store.Get"
	s, err := ss.storeRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, internalError(op, err)
	}
	if s == nil {
		return nil, notFoundError(op, "store", id)
	}
	return s, nil
}

func (ss *storeService) ListStores(ctx context.Context, f repos.StoreFilter) ([]*types.Store, error) {
	f.ActiveOnly = true
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
	out, err := ss.storeRepo.List(dbctx.Context{Ctx: ctx}, f)
	if err != nil {
		return nil, internalError("Store.List", err)
	}
	return out, nil
}

func (ss *storeService) ListStoresBySeller(ctx context.Context, sellerID uuid.UUID) ([]*types.Store, error) {
	out, err := ss.storeRepo.ListBySeller(dbctx.Context{Ctx: ctx}, sellerID)
	if err != nil {
		return nil, internalError("Store.ListBySeller", err)
	}
	return out, nil
}

func (ss *storeService) DeactivateStore(ctx context.Context, id uuid.UUID) (*types.Store, error) {
	const op = "Store.Deactivate"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	s, err := ss.storeRepo.GetByID(dbc, id)
	if err != nil {
		return nil, internalError(op, err)
	}
	if s == nil {
		return nil, notFoundError(op, "store", id)
	}
	if err := authz.Authorize(caller, authz.ActionDeactivateItem, authz.Resource{SellerID: s.SellerID}); err != nil {
		return nil, err
	}
	if err := ss.storeRepo.UpdateFields(dbc, id, map[string]any{"is_active": false}); err != nil {
		return nil, internalError(op, err)
	}
	s.IsActive = false
	s.UpdatedAt = time.Now().UTC()
	ss.log.Info("Store deactivated", "store_id", id, "by", caller.UserID)
	return s, nil
}
