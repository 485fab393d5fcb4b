package manager_test

import (
	"context"
	"errors"
	"testing"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/manager"
	"go-pos/internal/store"
	"go-pos/internal/store/memstore"
	"go-pos/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	managerRole = uuid.NewString()
	superRole   = uuid.NewString()
)

// roleTable maps role ids to whether they grant superadmin.
type roleTable map[string]bool

func (r roleTable) IsSuperadmin(_ context.Context, id string) (bool, error) {
	super, ok := r[id]
	if !ok {
		return false, store.ErrNotFound
	}
	return super, nil
}

var admin = authz.Actor{
	ID:         "admin-1",
	BusinessID: "B1",
	Permissions: authz.NewPermissionSet(
		"manager:view", "manager:create", "manager:update", "manager:delete",
	),
}

// brokenBranches fails every write so the last step of manager creation
// cannot complete.
type brokenBranches struct {
	store.Table[branch.Branch]
}

func (brokenBranches) Save(context.Context, *branch.Branch) error {
	return errors.New("connection reset")
}

type fixture struct {
	repo     *manager.Repository
	managers *memstore.Table[manager.Manager]
	users    *memstore.Table[user.User]
	branches *memstore.Table[branch.Branch]
}

func setup(t *testing.T, wrap func(store.Table[branch.Branch]) store.Table[branch.Branch]) fixture {
	t.Helper()
	db := memstore.New()
	f := fixture{
		managers: memstore.NewTable[manager.Manager](db),
		users:    memstore.NewTable[user.User](db, memstore.WithUnique("email")),
		branches: memstore.NewTable[branch.Branch](db),
	}
	require.NoError(t, f.branches.Create(context.Background(), &branch.Branch{ID: "BR1", BusinessID: "B1", Name: "Main"}))

	var branches store.Table[branch.Branch] = f.branches
	if wrap != nil {
		branches = wrap(branches)
	}
	links := manager.Links{
		Users:    f.users,
		Branches: branches,
		Roles:    roleTable{managerRole: false, superRole: true},
	}
	f.repo = manager.NewRepository(f.managers, links, crud.Deps{Tx: db})
	return f
}

func request(branchID string) manager.AddManagerRequest {
	return manager.AddManagerRequest{
		BranchID:        branchID,
		RoleID:          managerRole,
		Name:            "Sari",
		Email:           "sari@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
}

func TestCreate_LinksUserAndBranch(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	res, err := f.repo.Create(ctx, admin, request("BR1"))
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	m := res.Values.(manager.Manager)

	u, err := f.users.First(ctx, store.Filter{store.Eq("id", m.UserID)})
	require.NoError(t, err)
	assert.Equal(t, "sari@example.com", u.Email)
	assert.Equal(t, "BR1", u.BranchID)
	assert.True(t, user.CheckPassword(u.PasswordHash, "password1"))

	b, err := f.branches.First(ctx, store.Filter{store.Eq("id", "BR1")})
	require.NoError(t, err)
	require.NotNil(t, b.ManagerID)
	assert.Equal(t, m.ID, *b.ManagerID)
}

func TestCreate_FailedBranchLinkLeavesNothing(t *testing.T) {
	f := setup(t, func(inner store.Table[branch.Branch]) store.Table[branch.Branch] {
		return brokenBranches{inner}
	})

	res, err := f.repo.Create(context.Background(), admin, request("BR1"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)

	assert.Equal(t, 0, f.users.Len())
	assert.Equal(t, 0, f.managers.Len())
}

func TestCreate_UnknownBranch(t *testing.T) {
	f := setup(t, nil)

	res, err := f.repo.Create(context.Background(), admin, request("BR9"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Branch not found"}, res.Errors["branchId"])
	assert.Equal(t, 0, f.users.Len())
}

func TestCreate_EmailTaken(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &user.User{ID: uuid.NewString(), Email: "sari@example.com"}))

	res, err := f.repo.Create(ctx, admin, request("BR1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Email is already registered"}, res.Errors["email"])
	assert.Equal(t, 0, f.managers.Len())
}

func TestCreate_BranchAlreadyManaged(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	res, err := f.repo.Create(ctx, admin, request("BR1"))
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	first := res.Values.(manager.Manager)

	second := request("BR1")
	second.Email = "budi@example.com"
	res, err = f.repo.Create(ctx, admin, second)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"Branch already has a manager"}, res.Errors["branchId"])

	assert.Equal(t, 1, f.managers.Len())
	assert.Equal(t, 1, f.users.Len())
	b, err := f.branches.First(ctx, store.Filter{store.Eq("id", "BR1")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, *b.ManagerID)
}

func TestCreate_SuperadminRoleNeedsSuperadmin(t *testing.T) {
	f := setup(t, nil)

	req := request("BR1")
	req.RoleID = superRole
	res, err := f.repo.Create(context.Background(), admin, req)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"Only a superadmin can assign this role"}, res.Errors["roleId"])
	assert.Equal(t, 0, f.users.Len())
	assert.Equal(t, 0, f.managers.Len())
}

func TestCreate_NormalizesEmail(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &user.User{ID: uuid.NewString(), Email: "sari@example.com"}))

	req := request("BR1")
	req.Email = "Sari@Example.com"
	res, err := f.repo.Create(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Email is already registered"}, res.Errors["email"])
}

func TestDelete_ReleasesBranchAndLogin(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	res, err := f.repo.Create(ctx, admin, request("BR1"))
	require.NoError(t, err)
	m := res.Values.(manager.Manager)

	res, err = f.repo.Delete(ctx, admin, m.ID)
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)

	b, err := f.branches.First(ctx, store.Filter{store.Eq("id", "BR1")})
	require.NoError(t, err)
	assert.Nil(t, b.ManagerID)

	u, err := f.users.First(ctx, store.Filter{store.Eq("id", m.UserID)})
	require.NoError(t, err)
	assert.True(t, u.IsDeleted)
	assert.Equal(t, 0, f.managers.Len())
}
