package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/marketplace-backend/internal/data/repos/testutil"
	types "github.com/yungbote/marketplace-backend/internal/domain"
	domainuser "github.com/yungbote/marketplace-backend/internal/domain/user"
	"github.com/yungbote/marketplace-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	created, err := repo.Create(dbc, []*types.User{{
		Email:     " UserRepo@Example.com ",
		Password:  "hash",
		FirstName: "A",
		LastName:  "B",
		Role:      domainuser.RoleBuyer,
		IsActive:  true,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: want=1 got=%d", len(created))
	}
	if created[0].Email != "userrepo@example.com" {
		t.Fatalf("Create: email not normalized: %q", created[0].Email)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}

	byEmail, err := repo.GetByEmail(dbc, "USERREPO@example.com")
	if err != nil || byEmail == nil || byEmail.ID != created[0].ID {
		t.Fatalf("GetByEmail: got=%+v err=%v", byEmail, err)
	}

	byIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID, uuid.New()})
	if err != nil || len(byIDs) != 1 {
		t.Fatalf("GetByIDs: got=%d err=%v", len(byIDs), err)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil || !exists {
		t.Fatalf("EmailExists: want=true got=%v err=%v", exists, err)
	}
	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists missing: want=false got=%v err=%v", exists, err)
	}

	found, err := repo.SetActive(dbc, created[0].ID, false)
	if err != nil || !found {
		t.Fatalf("SetActive: found=%v err=%v", found, err)
	}
	got, _ = repo.GetByID(dbc, created[0].ID)
	if got.IsActive {
		t.Fatalf("SetActive: user still active")
	}
	found, err = repo.SetActive(dbc, uuid.New(), false)
	if err != nil || found {
		t.Fatalf("SetActive missing: found=%v err=%v", found, err)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID missing: want nil,nil got=%+v,%v", missing, err)
	}
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background()}

	mk := func() *types.User {
		return &types.User{Email: "dup@example.com", Password: "h", FirstName: "A", LastName: "B", Role: domainuser.RoleBuyer, IsActive: true}
	}
	if _, err := repo.Create(dbc, []*types.User{mk()}); err != nil {
		t.Fatalf("Create first: %v", err)
	}
	if _, err := repo.Create(dbc, []*types.User{mk()}); err == nil {
		t.Fatalf("Create duplicate: expected unique violation")
	}
}
