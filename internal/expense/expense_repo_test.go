package expense_test

import (
	"context"
	"testing"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/expense"
	"go-pos/internal/store/memstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpense(t *testing.T) {
	ctx := context.Background()
	db := memstore.New()
	branches := memstore.NewTable[branch.Branch](db)
	require.NoError(t, branches.Create(ctx, &branch.Branch{ID: "BR1", BusinessID: "B1", Name: "Main"}))
	require.NoError(t, branches.Create(ctx, &branch.Branch{ID: "BR9", BusinessID: "B2", Name: "Elsewhere"}))
	expenses := memstore.NewTable[expense.Expense](db, memstore.WithAutoIncrement())
	repo := expense.NewRepository(expenses, branches, crud.Deps{Tx: db})

	manager := authz.Actor{
		ID: "m1", BusinessID: "B1", BranchID: "BR1",
		Permissions: authz.NewPermissionSet("expense:view", "expense:create"),
	}
	spent := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("amount must be positive", func(t *testing.T) {
		res, err := repo.Create(ctx, manager, expense.AddExpenseRequest{Title: "Rent", SpentAt: spent})
		require.NoError(t, err)
		assert.Equal(t, []string{"Amount must be greater than 0"}, res.Errors["amount"])
	})

	t.Run("defaults to the manager's branch", func(t *testing.T) {
		res, err := repo.Create(ctx, manager, expense.AddExpenseRequest{
			Title: "Rent", Amount: decimal.NewFromInt(500), SpentAt: spent,
		})
		require.NoError(t, err)
		require.True(t, res.Success, "%+v", res)
		e := res.Values.(expense.Expense)
		assert.Equal(t, "B1", e.BusinessID)
		assert.Equal(t, "BR1", e.BranchID)
		assert.Equal(t, "m1", e.CreatedBy)
	})

	t.Run("another branch is forbidden", func(t *testing.T) {
		_, err := repo.Create(ctx, manager, expense.AddExpenseRequest{
			BranchID: "BR2", Title: "Rent", Amount: decimal.NewFromInt(1), SpentAt: spent,
		})
		assert.Error(t, err)
	})

	t.Run("branch of another business", func(t *testing.T) {
		owner := authz.Actor{ID: "o1", BusinessID: "B1", Permissions: manager.Permissions}
		before := expenses.Len()
		res, err := repo.Create(ctx, owner, expense.AddExpenseRequest{
			BranchID: "BR9", Title: "Rent", Amount: decimal.NewFromInt(1), SpentAt: spent,
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, []string{"Branch not found"}, res.Errors["branchId"])
		assert.Equal(t, before, expenses.Len())
	})
}
