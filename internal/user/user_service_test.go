package user_test

import (
	"context"
	"testing"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/store"
	"go-pos/internal/store/memstore"
	"go-pos/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	roleID      = uuid.NewString()
	superRoleID = uuid.NewString()
	admin       = authz.Actor{
		ID:         "admin-1",
		BusinessID: "B1",
		Permissions: authz.NewPermissionSet(
			"user:view", "user:create", "user:update", "user:delete",
		),
	}
	fixedNow = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
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

func setup(t *testing.T) (*user.Service, *memstore.Table[user.User]) {
	t.Helper()
	ctx := context.Background()
	db := memstore.New()

	branches := memstore.NewTable[branch.Branch](db)
	require.NoError(t, branches.Create(ctx, &branch.Branch{ID: "BR1", BusinessID: "B1", Name: "Main"}))
	require.NoError(t, branches.Create(ctx, &branch.Branch{ID: "BR9", BusinessID: "B2", Name: "Elsewhere"}))

	table := memstore.NewTable[user.User](db, memstore.WithUnique("email"))
	refs := user.References{
		Roles:    roleTable{roleID: false, superRoleID: true},
		Branches: branches,
	}
	svc := user.NewService(table, refs, crud.Deps{Tx: db, Now: func() time.Time { return fixedNow }})
	return svc, table
}

func addRequest(email string) user.AddUserRequest {
	return user.AddUserRequest{
		RoleID:          roleID,
		Name:            "Rina",
		Email:           email,
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
	}
}

func create(t *testing.T, svc *user.Service, email string) user.User {
	t.Helper()
	res, err := svc.Create(context.Background(), admin, addRequest(email))
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	return res.Values.(user.User)
}

func TestCreate_HashesPassword(t *testing.T) {
	svc, _ := setup(t)

	u := create(t, svc, "rina@example.com")

	assert.Equal(t, "B1", u.BusinessID)
	assert.Equal(t, user.StatusActive, u.Status)
	assert.NotEqual(t, "s3cretpass", u.PasswordHash)
	assert.True(t, user.CheckPassword(u.PasswordHash, "s3cretpass"))
}

func TestCreate_Validation(t *testing.T) {
	svc, table := setup(t)

	req := addRequest("not-an-email")
	req.ConfirmPassword = "different"
	req.Password = "short"
	res, err := svc.Create(context.Background(), admin, req)
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Contains(t, res.Errors, "email")
	assert.Contains(t, res.Errors, "password")
	assert.Contains(t, res.Errors, "confirmPassword")
	assert.Equal(t, 0, table.Len())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc, _ := setup(t)
	create(t, svc, "rina@example.com")

	res, err := svc.Create(context.Background(), admin, addRequest("rina@example.com"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "User already exists", res.Message)
}

func TestCreate_NormalizesEmail(t *testing.T) {
	svc, _ := setup(t)

	u := create(t, svc, "Rina@Example.COM")
	assert.Equal(t, "rina@example.com", u.Email)

	res, err := svc.Create(context.Background(), admin, addRequest("RINA@example.com"))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "User already exists", res.Message)
}

func TestCreate_RoleChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("superadmin role needs a superadmin", func(t *testing.T) {
		svc, table := setup(t)
		req := addRequest("m@example.com")
		req.RoleID = superRoleID

		res, err := svc.Create(ctx, admin, req)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, []string{"Only a superadmin can assign this role"}, res.Errors["roleId"])
		assert.Equal(t, 0, table.Len())

		root := admin
		root.Superadmin = true
		req.BusinessID = "B1"
		res, err = svc.Create(ctx, root, req)
		require.NoError(t, err)
		assert.True(t, res.Success, "%+v", res)
	})

	t.Run("unknown role", func(t *testing.T) {
		svc, _ := setup(t)
		req := addRequest("m@example.com")
		req.RoleID = uuid.NewString()

		res, err := svc.Create(ctx, admin, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"Role not found"}, res.Errors["roleId"])
	})

	t.Run("branch of another business", func(t *testing.T) {
		svc, table := setup(t)
		req := addRequest("m@example.com")
		req.BranchID = "BR9"

		res, err := svc.Create(ctx, admin, req)
		require.NoError(t, err)
		assert.Equal(t, []string{"Branch not found"}, res.Errors["branchId"])
		assert.Equal(t, 0, table.Len())

		req.BranchID = "BR1"
		res, err = svc.Create(ctx, admin, req)
		require.NoError(t, err)
		assert.True(t, res.Success, "%+v", res)
	})
}

func TestUpdate_RoleChecks(t *testing.T) {
	ctx := context.Background()
	svc, table := setup(t)
	u := create(t, svc, "rina@example.com")

	edit := user.EditUserRequest{ID: u.ID, RoleID: superRoleID, Name: u.Name, Email: u.Email}
	res, err := svc.Update(ctx, admin, edit)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, []string{"Only a superadmin can assign this role"}, res.Errors["roleId"])

	stored, err := table.First(ctx, store.Filter{store.Eq("id", u.ID)})
	require.NoError(t, err)
	assert.Equal(t, roleID, stored.RoleID)

	t.Run("moving to a foreign branch", func(t *testing.T) {
		edit := user.EditUserRequest{ID: u.ID, RoleID: roleID, BranchID: "BR9", Name: u.Name, Email: u.Email}
		res, err := svc.Update(ctx, admin, edit)
		require.NoError(t, err)
		assert.Equal(t, []string{"Branch not found"}, res.Errors["branchId"])
	})

	t.Run("unchanged role passes", func(t *testing.T) {
		edit := user.EditUserRequest{ID: u.ID, RoleID: roleID, Name: "Rina S", Email: u.Email}
		res, err := svc.Update(ctx, admin, edit)
		require.NoError(t, err)
		assert.True(t, res.Success, "%+v", res)
	})
}

func TestDelete_IsSoft(t *testing.T) {
	svc, table := setup(t)
	ctx := context.Background()
	u := create(t, svc, "rina@example.com")

	res, err := svc.Delete(ctx, admin, u.ID)
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	assert.Equal(t, 1, table.Len())

	got, err := svc.Get(ctx, admin, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)
	assert.True(t, fixedNow.Equal(*got.DeletedAt))

	page, err := svc.List(ctx, admin, crud.ListParams{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)

	page, err = svc.List(ctx, admin, crud.ListParams{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)

	t.Run("second delete is not found", func(t *testing.T) {
		res, err := svc.Delete(ctx, admin, u.ID)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, []string{"not found"}, res.Errors["id"])
	})
}

func TestChangePassword(t *testing.T) {
	svc, table := setup(t)
	ctx := context.Background()
	u := create(t, svc, "rina@example.com")

	self := authz.Actor{ID: u.ID, BusinessID: "B1"}

	t.Run("wrong current password", func(t *testing.T) {
		res, err := svc.ChangePassword(ctx, self, user.ChangePasswordRequest{
			ID: u.ID, CurrentPassword: "nope", NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Current password is incorrect"}, res.Errors["currentPassword"])
	})

	t.Run("confirmation must match", func(t *testing.T) {
		res, err := svc.ChangePassword(ctx, self, user.ChangePasswordRequest{
			ID: u.ID, CurrentPassword: "s3cretpass", NewPassword: "newpass123", ConfirmPassword: "newpass124",
		})
		require.NoError(t, err)
		assert.Contains(t, res.Errors, "confirmPassword")
		assert.NotContains(t, res.Values, "newPassword")
	})

	t.Run("self service", func(t *testing.T) {
		res, err := svc.ChangePassword(ctx, self, user.ChangePasswordRequest{
			ID: u.ID, CurrentPassword: "s3cretpass", NewPassword: "newpass123", ConfirmPassword: "newpass123",
		})
		require.NoError(t, err)
		require.True(t, res.Success, "%+v", res)

		stored, err := table.First(ctx, nil)
		require.NoError(t, err)
		assert.True(t, user.CheckPassword(stored.PasswordHash, "newpass123"))
	})

	t.Run("someone else's needs permission", func(t *testing.T) {
		other := authz.Actor{ID: "x", BusinessID: "B1"}
		_, err := svc.ChangePassword(ctx, other, user.ChangePasswordRequest{
			ID: u.ID, NewPassword: "another123", ConfirmPassword: "another123",
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestToggleStatus(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	u := create(t, svc, "rina@example.com")

	res, err := svc.ToggleStatus(ctx, admin, u.ID)
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	assert.Equal(t, user.StatusDisabled, res.Values.(user.User).Status)

	res, err = svc.ToggleStatus(ctx, admin, u.ID)
	require.NoError(t, err)
	assert.Equal(t, user.StatusActive, res.Values.(user.User).Status)

	res, err = svc.ToggleStatus(ctx, admin, admin.ID)
	require.NoError(t, err)
	assert.Contains(t, res.Errors, "id")

	other := admin
	other.BusinessID = "B2"
	res, err = svc.ToggleStatus(ctx, other, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"not found"}, res.Errors["id"])
}
