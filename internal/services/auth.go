package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/marketplace-backend/internal/data/repos"
	userrepo "github.com/yungbote/marketplace-backend/internal/data/repos/user"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainagg "github.com/yungbote/marketplace-backend/internal/domain/aggregates"
	"github.com/yungbote/marketplace-backend/internal/domain/user"
	"github.com/yungbote/marketplace-backend/internal/platform/apierr"
	"github.com/yungbote/marketplace-backend/internal/platform/ctxutil"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
	"github.com/yungbote/marketplace-backend/internal/platform/logger"
)

const minPasswordLength = 8

var errInvalidCredentials = errors.New("invalid email or password")

type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber *string
	Role        string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	// SetContextFromToken verifies token, loads its active user and attaches
	// the caller to ctx.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey []byte
	accessTTL    time.Duration
	now          func() time.Time
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: []byte(jwtSecretKey),
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	const op = "Auth.Register"
	email := userrepo.NormalizeEmail(in.Email)
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, validationError(op, "a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, validationError(op, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, validationError(op, "first_name and last_name are required")
	}
	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = user.RoleBuyer
	}
	if role != user.RoleBuyer && role != user.RoleSeller {
		return nil, validationError(op, "role must be buyer or seller")
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, internalError(op, err)
	}
	if exists {
		return nil, domainagg.NewError(domainagg.CodeConflict, op, "email already registered", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError(op, err)
	}
	u := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hash),
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: trimPtr(in.PhoneNumber),
		Role:        role,
		IsActive:    true,
	}
	created, err := as.userRepo.Create(dbc, []*types.User{u})
	if err != nil {
		// lost a race with a concurrent registration
		if exists, xErr := as.userRepo.EmailExists(dbc, email); xErr == nil && exists {
			return nil, domainagg.NewError(domainagg.CodeConflict, op, "email already registered", err)
		}
		return nil, internalError(op, err)
	}
	as.log.Info("User registered", "user_id", u.ID, "role", role)
	return created[0], nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	const op = "Auth.Login"
	email = userrepo.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, validationError(op, "email and password are required")
	}
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return "", nil, internalError(op, err)
	}
	if u == nil {
		return "", nil, apierr.Unauthorized(errInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized(errInvalidCredentials)
	}
	if !u.IsActive {
		return "", nil, domainagg.NewError(domainagg.CodeForbidden, op, "account is deactivated", nil)
	}
	token, err := as.generateAccessToken(u)
	if err != nil {
		return "", nil, internalError(op, err)
	}
	return token, u, nil
}

func (as *authService) generateAccessToken(u *types.User) (string, error) {
	now := as.now()
	claims := jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecretKey)
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.jwtSecretKey, nil
	}, jwt.WithTimeFunc(as.now))
	if err != nil || !token.Valid {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid token"))
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid token claims"))
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid token subject"))
	}

	u, err := as.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		as.log.Warn("Token user lookup failed", "user_id", userID, "error", err)
		return ctx, err
	}
	if u == nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("user no longer exists"))
	}
	if !u.IsActive {
		return ctx, apierr.New(http.StatusForbidden, "forbidden", fmt.Errorf("account is deactivated"))
	}
	// role comes from the row so a changed role takes effect immediately
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: u.ID, Role: u.Role}), nil
}
