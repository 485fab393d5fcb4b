package branch

import (
	"context"
	"errors"

	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

const Resource = "branch"

// Columns scopes the branches table; a branch is its own branch key.
var Columns = tenant.Columns{Business: "business_id", Branch: "id"}

type Repository = crud.Repository[Branch, AddBranchRequest, EditBranchRequest]

func Spec() crud.Spec[Branch, AddBranchRequest, EditBranchRequest] {
	return crud.Spec[Branch, AddBranchRequest, EditBranchRequest]{
		Resource: Resource,
		Label:    "Branch",
		KeyOf:    func(b Branch) any { return b.ID },
		EditKey:  func(r EditBranchRequest) any { return r.ID },
		Tenant:   Columns,
		TenantOf: func(b Branch) (string, string) { return b.BusinessID, b.ID },
		Fields: map[string]crud.Field{
			"name":       {Column: "name", Op: store.OpContains, Sortable: true},
			"location":   {Column: "location", Op: store.OpContains, Sortable: true},
			"businessId": {Column: "business_id", Op: store.OpEq},
			"status":     {Column: "status", Op: store.OpEq},
			"createdAt":  {Column: "created_at", Sortable: true},
		},
		Views: []string{"dashboard", "stock"},
		Build: func(r AddBranchRequest) Branch {
			return Branch{
				ID:         r.ID,
				BusinessID: r.BusinessID,
				Name:       r.Name,
				Location:   r.Location,
				Phone:      r.Phone,
				Status:     StatusActive,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(b *Branch, r EditBranchRequest) {
			b.Name = r.Name
			b.Location = r.Location
			b.Phone = r.Phone
			b.Status = r.Status
			b.UpdatedBy = r.UpdatedBy
		},
	}
}

func NewRepository(table store.Table[Branch], deps crud.Deps) *Repository {
	return crud.New(Spec(), table, deps)
}

// Exists fails with a field error on branchId unless branchID is a branch of
// businessID.
func Exists(ctx context.Context, table store.Table[Branch], businessID, branchID string) error {
	_, err := table.First(ctx, store.Filter{
		store.Eq("id", branchID),
		store.Eq("business_id", businessID),
	})
	if errors.Is(err, store.ErrNotFound) {
		return crud.NewFieldError("branchId", "Branch not found")
	}
	return err
}
