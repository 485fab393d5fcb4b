package rbac_test

import (
	"context"
	"testing"

	"go-pos/internal/rbac"
	"go-pos/internal/store"
	"go-pos/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogue(t *testing.T) {
	codes := rbac.Catalogue([]string{"branch", "order"}, "report:view")

	assert.Equal(t, []string{
		"branch:view", "branch:create", "branch:update", "branch:delete",
		"order:view", "order:create", "order:update", "order:delete",
		"report:view",
	}, codes)
}

func TestSeeder_Permissions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seeder := rbac.NewSeeder(f.db, f.roles, f.perms, f.users)
	codes := rbac.Catalogue([]string{"branch"}, "report:view")

	f.permission(t, "branch:view")

	added, err := seeder.Permissions(ctx, codes)
	require.NoError(t, err)
	assert.Equal(t, 4, added)
	assert.Equal(t, 5, f.perms.Len())

	row, err := f.perms.First(ctx, store.Filter{store.Eq("code", "report:view")})
	require.NoError(t, err)
	assert.Equal(t, "View report", row.Description)

	added, err = seeder.Permissions(ctx, codes)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestSeeder_Superadmin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seeder := rbac.NewSeeder(f.db, f.roles, f.perms, f.users)
	f.permission(t, "branch:view")

	u, err := seeder.Superadmin(ctx, "Root", " Root@Shop.test ", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "root@shop.test", u.Email)
	assert.True(t, user.CheckPassword(u.PasswordHash, "s3cret-pass"))

	again, err := seeder.Superadmin(ctx, "Root", "root@shop.test", "another-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
	assert.True(t, user.CheckPassword(again.PasswordHash, "s3cret-pass"))
	assert.Equal(t, 1, f.roles.Len())
	assert.Equal(t, 1, f.users.Len())

	actor, err := rbac.NewResolver(f.users, f.roles, f.policy).Resolve(ctx, "root@shop.test")
	require.NoError(t, err)
	assert.True(t, actor.Superadmin)
	assert.True(t, actor.Permissions.Has("branch:view"))

	_, err = seeder.Superadmin(ctx, "Root", "", "x")
	assert.Error(t, err)
}
