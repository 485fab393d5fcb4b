package rbac_test

import (
	"context"
	"testing"

	"go-pos/internal/rbac"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	manager := f.role(t, "Branch manager")
	view := f.permission(t, "branch:view")
	f.permission(t, "branch:delete")
	_, err := f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{RoleID: manager.ID, PermissionIDs: []int{view.ID}})
	require.NoError(t, err)

	super := rbac.Role{ID: "22222222-2222-4222-8222-222222222222", Title: "Superadmin", Superadmin: true}
	require.NoError(t, f.roles.Create(ctx, &super))

	users := []user.User{
		{ID: "u1", Email: "mgr@example.com", BusinessID: "B1", BranchID: "BR1", RoleID: manager.ID, Status: user.StatusActive},
		{ID: "u2", Email: "off@example.com", BusinessID: "B1", RoleID: manager.ID, Status: user.StatusDisabled},
		{ID: "u3", Email: "gone@example.com", BusinessID: "B1", RoleID: manager.ID, Status: user.StatusActive, IsDeleted: true},
		{ID: "u4", Email: "root@example.com", RoleID: super.ID, Status: user.StatusActive},
		{ID: "u5", Email: "lost@example.com", RoleID: "33333333-3333-4333-8333-333333333333", Status: user.StatusActive},
	}
	for i := range users {
		require.NoError(t, f.users.Create(ctx, &users[i]))
	}
	r := rbac.NewResolver(f.users, f.roles, f.policy)

	t.Run("branch manager", func(t *testing.T) {
		actor, err := r.Resolve(ctx, "mgr@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u1", actor.ID)
		assert.Equal(t, "BR1", actor.BranchID)
		assert.False(t, actor.Superadmin)
		assert.ElementsMatch(t, []string{"branch:view"}, actor.Permissions.Codes())
		assert.Equal(t, "B1", actor.Scope().BusinessID)
	})

	t.Run("superadmin holds every code", func(t *testing.T) {
		actor, err := r.Resolve(ctx, "root@example.com")
		require.NoError(t, err)
		assert.True(t, actor.Superadmin)
		assert.ElementsMatch(t, []string{"branch:view", "branch:delete"}, actor.Permissions.Codes())
		assert.True(t, actor.Scope().Unscoped())
	})

	t.Run("rejections", func(t *testing.T) {
		cases := map[string]error{
			"off@example.com":    apperror.ErrAccountDisabled,
			"gone@example.com":   apperror.ErrUnauthorized,
			"nobody@example.com": apperror.ErrUnauthorized,
			"lost@example.com":   apperror.ErrUnauthorized,
			"   ":                apperror.ErrUnauthorized,
		}
		for email, want := range cases {
			_, err := r.Resolve(ctx, email)
			assert.ErrorIs(t, err, want, email)
		}
	})
}
