package salesman

import (
	"context"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"

	"github.com/google/uuid"
)

const Resource = "salesman"

type Repository = crud.Repository[Salesman, AddSalesmanRequest, EditSalesmanRequest]

// Spec checks on create that the branch belongs to the payload's business.
func Spec(branches store.Table[branch.Branch]) crud.Spec[Salesman, AddSalesmanRequest, EditSalesmanRequest] {
	return crud.Spec[Salesman, AddSalesmanRequest, EditSalesmanRequest]{
		Resource: Resource,
		Label:    "Salesman",
		KeyOf:    func(s Salesman) any { return s.ID },
		EditKey:  func(r EditSalesmanRequest) any { return r.ID },
		Tenant:   tenant.Branch,
		TenantOf: func(s Salesman) (string, string) { return s.BusinessID, s.BranchID },
		Fields: map[string]crud.Field{
			"name":      {Column: "name", Op: store.OpContains, Sortable: true},
			"email":     {Column: "email", Op: store.OpContains, Sortable: true},
			"branchId":  {Column: "branch_id", Op: store.OpEq},
			"createdAt": {Column: "created_at", Sortable: true},
		},
		Views: []string{"dashboard"},
		Build: func(r AddSalesmanRequest) Salesman {
			return Salesman{
				ID:         uuid.NewString(),
				BusinessID: r.BusinessID,
				BranchID:   r.BranchID,
				Name:       r.Name,
				Phone:      r.Phone,
				Email:      r.Email,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(s *Salesman, r EditSalesmanRequest) {
			s.Name = r.Name
			s.Phone = r.Phone
			s.Email = r.Email
			s.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Salesman, AddSalesmanRequest, EditSalesmanRequest]{
			BeforeCreate: func(ctx context.Context, _ authz.Actor, _ AddSalesmanRequest, row *Salesman) error {
				return branch.Exists(ctx, branches, row.BusinessID, row.BranchID)
			},
		},
	}
}

func NewRepository(table store.Table[Salesman], branches store.Table[branch.Branch], deps crud.Deps) *Repository {
	return crud.New(Spec(branches), table, deps)
}
