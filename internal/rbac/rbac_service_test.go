package rbac_test

import (
	"context"
	"testing"

	"go-pos/internal/authz"
	"go-pos/internal/crud"
	"go-pos/internal/rbac"
	"go-pos/internal/store"
	"go-pos/internal/store/memstore"
	"go-pos/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var root = authz.Actor{
	ID:         "root",
	Superadmin: true,
	Permissions: authz.NewPermissionSet(
		"role:view", "role:create", "role:update", "role:delete",
		"permission:view", "permission:create", "permission:delete",
	),
}

type fixture struct {
	db     *memstore.DB
	svc    *rbac.Service
	policy *rbac.Policy
	users  *memstore.Table[user.User]
	roles  *memstore.Table[rbac.Role]
	perms  *memstore.Table[rbac.Permission]
	links  *memstore.Table[rbac.RolePermission]
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := memstore.New()
	f := fixture{
		db:    db,
		users: memstore.NewTable[user.User](db, memstore.WithUnique("email")),
		roles: memstore.NewTable[rbac.Role](db, memstore.WithUnique("title")),
		perms: memstore.NewTable[rbac.Permission](db, memstore.WithAutoIncrement(), memstore.WithUnique("code")),
		links: memstore.NewTable[rbac.RolePermission](db, memstore.WithAutoIncrement(), memstore.WithUnique("role_id", "permission_id")),
	}
	f.policy = rbac.NewPolicy(f.roles, f.perms, f.links, rbac.PolicyOptions{})
	f.svc = rbac.NewService(f.roles, f.perms, f.links, f.policy, crud.Deps{Tx: db})
	return f
}

func (f fixture) role(t *testing.T, title string) rbac.Role {
	t.Helper()
	res, err := f.svc.Roles.Create(context.Background(), root, rbac.AddRoleRequest{Title: title})
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	return res.Values.(rbac.Role)
}

func (f fixture) permission(t *testing.T, code string) rbac.Permission {
	t.Helper()
	res, err := f.svc.Permissions.Create(context.Background(), root, rbac.AddPermissionRequest{Code: code})
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	return res.Values.(rbac.Permission)
}

func TestPermission_CodeFormat(t *testing.T) {
	f := setup(t)

	res, err := f.svc.Permissions.Create(context.Background(), root, rbac.AddPermissionRequest{Code: "Branch View"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Code must have the form resource:action"}, res.Errors["code"])
}

func TestSetPermissions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	manager := f.role(t, "Branch manager")
	view := f.permission(t, "branch:view")
	update := f.permission(t, "branch:update")
	orders := f.permission(t, "order:create")

	res, err := f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{
		RoleID: manager.ID, PermissionIDs: []int{view.ID, update.ID, view.ID},
	})
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	assert.Equal(t, 2, f.links.Len())

	t.Run("replaces the previous set", func(t *testing.T) {
		res, err := f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{
			RoleID: manager.ID, PermissionIDs: []int{orders.ID},
		})
		require.NoError(t, err)
		require.True(t, res.Success, "%+v", res)

		got, err := f.svc.RolePermissions(ctx, root, manager.ID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "order:create", got[0].Code)
	})

	t.Run("unknown permission keeps the old set", func(t *testing.T) {
		res, err := f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{
			RoleID: manager.ID, PermissionIDs: []int{view.ID, 99},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Permission not found"}, res.Errors["permissionIds[1]"])

		rows, err := f.links.FindMany(ctx, store.Query{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, orders.ID, rows[0].PermissionID)
	})

	t.Run("unknown role", func(t *testing.T) {
		res, err := f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{
			RoleID: "6f1c1b0e-0000-4000-8000-000000000000", PermissionIDs: []int{view.ID},
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Contains(t, res.Errors, "id")
	})
}

func TestDeleteRole(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cashier := f.role(t, "Cashier")
	p := f.permission(t, "order:create")
	_, err := f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{RoleID: cashier.ID, PermissionIDs: []int{p.ID}})
	require.NoError(t, err)

	res, err := f.svc.Roles.Delete(ctx, root, cashier.ID)
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	assert.Equal(t, 0, f.links.Len())

	t.Run("superadmin role is protected", func(t *testing.T) {
		require.NoError(t, f.roles.Create(ctx, &rbac.Role{ID: "11111111-1111-4111-8111-111111111111", Title: "Superadmin", Superadmin: true}))

		res, err := f.svc.Roles.Delete(ctx, root, "11111111-1111-4111-8111-111111111111")
		require.NoError(t, err)
		assert.Equal(t, []string{"The superadmin role cannot be deleted"}, res.Errors["id"])
		assert.Equal(t, 1, f.roles.Len())
	})
}
