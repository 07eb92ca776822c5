package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	"github.com/yungbote/marketplace-backend/internal/domain/authz"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	DeactivateUser(ctx context.Context, id uuid.UUID) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	const op = "User.GetMe"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	u, err := us.userRepo.GetByID(dbctx.Context{Ctx: ctx}, caller.UserID)
	if err != nil {
		return nil, internalError(op, err)
	}
	if u == nil {
		return nil, notFoundError(op, "user", caller.UserID)
	}
	return u, nil
}

func (us *userService) DeactivateUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	const op = "User.Deactivate"
	caller, err := callerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(caller, authz.ActionModerate, authz.Resource{}); err != nil {
		return nil, err
	}
	if caller.UserID == id {
		return nil, validationError(op, "admins cannot deactivate themselves")
	}
	dbc := dbctx.Context{Ctx: ctx}
	ok, err := us.userRepo.SetActive(dbc, id, false)
	if err != nil {
		return nil, internalError(op, err)
	}
	if !ok {
		return nil, notFoundError(op, "user", id)
	}
	us.log.Info("User deactivated", "user_id", id, "by", caller.UserID)
	return us.userRepo.GetByID(dbc, id)
}
