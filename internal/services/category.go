package services

import (
	"context"
	"strings"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*types.Category, error)
	CreateCategory(ctx context.Context, name string, description *string) (*types.Category, error)
}

type categoryService struct {
	log          *logger.Logger
	categoryRepo repos.CategoryRepo
}

func NewCategoryService(log *logger.Logger, categoryRepo repos.CategoryRepo) CategoryService {
	return &categoryService{
		log:          log.With("service", "CategoryService"),
		categoryRepo: categoryRepo,
	}
}

func (cs *categoryService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	out, err := cs.categoryRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, internalError("Category.List", err)
	}
	return out, nil
}

func (cs *categoryService) CreateCategory(ctx context.Context, name string, description *string) (*types.Category, error) {
	const op = "Category.Create"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionModerate, authz.Resource{}); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError(op, "name is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	exists, err := cs.categoryRepo.NameExists(dbc, name)
	if err != nil {
		return nil, internalError(op, err)
	}
	if exists {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, "category name already exists", nil)
	}
	created, err := cs.categoryRepo.Create(dbc, &types.Category{Name: name, Description: trimPtr(description)})
	if err != nil {
		return nil, internalError(op, err)
	}
	return created, nil
}
