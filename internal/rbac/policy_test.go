package rbac_test

import (
	"context"
	"testing"
	"time"

	"go-pos/internal/rbac"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_ReloadsAfterCommittedChanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cashier := f.role(t, "Cashier")
	view := f.permission(t, "order:view")
	create := f.permission(t, "order:create")

	codes, err := f.policy.Codes(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Empty(t, codes)

	_, err = f.svc.SetPermissions(ctx, root, rbac.SetPermissionsRequest{RoleID: cashier.ID, PermissionIDs: []int{view.ID, create.ID}})
	require.NoError(t, err)

	codes, err = f.policy.Codes(ctx, cashier.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"order:view", "order:create"}, codes)

	ok, err := f.policy.Allowed(ctx, cashier.ID, "order:view")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = f.policy.Allowed(ctx, cashier.ID, "order:delete")
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("deleting a permission drops the grant", func(t *testing.T) {
		res, err := f.svc.Permissions.Delete(ctx, root, "2")
		require.NoError(t, err)
		require.True(t, res.Success, "%+v", res)

		codes, err := f.policy.Codes(ctx, cashier.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"order:view"}, codes)
	})
}

func TestPolicy_SuperadminHoldsNewCodes(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	super := rbac.Role{ID: "22222222-2222-4222-8222-222222222222", Title: "Superadmin", Superadmin: true}
	require.NoError(t, f.roles.Create(ctx, &super))
	f.permission(t, "branch:view")

	codes, err := f.policy.Codes(ctx, super.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"branch:view"}, codes)

	f.permission(t, "branch:update")
	codes, err = f.policy.Codes(ctx, super.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"branch:view", "branch:update"}, codes)
}

func TestPolicy_OutsideWritesSeenAfterTTL(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	policy := rbac.NewPolicy(f.roles, f.perms, f.links, rbac.PolicyOptions{
		TTL: time.Minute,
		Now: func() time.Time { return now },
	})

	cashier := f.role(t, "Cashier")
	view := f.permission(t, "order:view")

	codes, err := policy.Codes(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Empty(t, codes)

	// another process links the permission
	require.NoError(t, f.links.Create(ctx, &rbac.RolePermission{RoleID: cashier.ID, PermissionID: view.ID}))

	now = now.Add(30 * time.Second)
	codes, err = policy.Codes(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Empty(t, codes)

	now = now.Add(31 * time.Second)
	codes, err = policy.Codes(ctx, cashier.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"order:view"}, codes)

	t.Run("invalidate forces a reload", func(t *testing.T) {
		require.NoError(t, f.links.Create(ctx, &rbac.RolePermission{RoleID: cashier.ID, PermissionID: f.permission(t, "order:create").ID}))
		policy.Invalidate()

		codes, err := policy.Codes(ctx, cashier.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"order:view", "order:create"}, codes)
	})
}
