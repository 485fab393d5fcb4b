package salesman_test

import (
	"context"
	"testing"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/salesman"
	"go-pos/internal/store/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesman(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	branches := memstore.NewTable[branch.Branch](db)
	require.NoError(t, branches.Create(ctx, &branch.Branch{ID: "BR1", BusinessID: "B1", Name: "Main"}))
	require.NoError(t, branches.Create(ctx, &branch.Branch{ID: "BR9", BusinessID: "B2", Name: "Elsewhere"}))
	repo := salesman.NewRepository(memstore.NewTable[salesman.Salesman](db), branches, crud.Deps{Tx: db})

	admin := authz.Actor{
		ID: "a1", BusinessID: "B1",
		Permissions: authz.NewPermissionSet("salesman:view", "salesman:create", "salesman:update"),
	}

	res, err := repo.Create(ctx, admin, salesman.AddSalesmanRequest{BranchID: "BR1", Name: "Dana", Phone: "+628123456789"})
	require.NoError(t, err)
	require.True(t, res.Success, "%+v", res)
	s := res.Values.(salesman.Salesman)
	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)

	t.Run("edit", func(t *testing.T) {
		res, err := repo.Update(ctx, admin, salesman.EditSalesmanRequest{ID: s.ID, Name: "Dana R"})
		require.NoError(t, err)
		require.True(t, res.Success, "%+v", res)
		assert.Equal(t, "Dana R", res.Values.(salesman.Salesman).Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		res, err := repo.Update(ctx, admin, salesman.EditSalesmanRequest{ID: uuid.NewString(), Name: "Nobody"})
		require.NoError(t, err)
		assert.Equal(t, []string{"not found"}, res.Errors["id"])
	})

	t.Run("bad email", func(t *testing.T) {
		res, err := repo.Create(ctx, admin, salesman.AddSalesmanRequest{BranchID: "BR1", Name: "Eve", Email: "nope"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Invalid email address"}, res.Errors["email"])
	})

	t.Run("branch of another business", func(t *testing.T) {
		res, err := repo.Create(ctx, admin, salesman.AddSalesmanRequest{BranchID: "BR9", Name: "Mallory"})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, []string{"Branch not found"}, res.Errors["branchId"])
	})
}
