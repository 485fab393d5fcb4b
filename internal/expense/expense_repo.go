package expense

import (
	"context"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

const Resource = "expense"

type Repository = crud.Repository[Expense, AddExpenseRequest, EditExpenseRequest]

// Spec checks on create that the branch belongs to the payload's business.
func Spec(branches store.Table[branch.Branch]) crud.Spec[Expense, AddExpenseRequest, EditExpenseRequest] {
	return crud.Spec[Expense, AddExpenseRequest, EditExpenseRequest]{
		Resource: Resource,
		Label:    "Expense",
		ParseKey: crud.Int,
		KeyOf:    func(e Expense) any { return e.ID },
		EditKey:  func(r EditExpenseRequest) any { return r.ID },
		Tenant:   tenant.Branch,
		TenantOf: func(e Expense) (string, string) { return e.BusinessID, e.BranchID },
		Fields: map[string]crud.Field{
			"title":    {Column: "title", Op: store.OpContains, Sortable: true},
			"category": {Column: "category", Op: store.OpEq, Sortable: true},
			"branchId": {Column: "branch_id", Op: store.OpEq},
			"amount":   {Column: "amount", Sortable: true},
			"spentAt":  {Column: "spent_at", Sortable: true},
		},
		Views: []string{"dashboard"},
		Build: func(r AddExpenseRequest) Expense {
			return Expense{
				BusinessID: r.BusinessID,
				BranchID:   r.BranchID,
				Title:      r.Title,
				Category:   r.Category,
				Amount:     r.Amount,
				SpentAt:    r.SpentAt,
				Note:       r.Note,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(e *Expense, r EditExpenseRequest) {
			e.Title = r.Title
			e.Category = r.Category
			e.Amount = r.Amount
			e.SpentAt = r.SpentAt
			e.Note = r.Note
			e.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Expense, AddExpenseRequest, EditExpenseRequest]{
			BeforeCreate: func(ctx context.Context, _ authz.Actor, _ AddExpenseRequest, row *Expense) error {
				return branch.Exists(ctx, branches, row.BusinessID, row.BranchID)
			},
		},
	}
}

func NewRepository(table store.Table[Expense], branches store.Table[branch.Branch], deps crud.Deps) *Repository {
	return crud.New(Spec(branches), table, deps)
}
