package business

import (
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

const Resource = "business"

type Repository = crud.Repository[Business, AddBusinessRequest, EditBusinessRequest]

func Spec() crud.Spec[Business, AddBusinessRequest, EditBusinessRequest] {
	return crud.Spec[Business, AddBusinessRequest, EditBusinessRequest]{
		Resource: Resource,
		Label:    "Business",
		KeyOf:    func(b Business) any { return b.ID },
		EditKey:  func(r EditBusinessRequest) any { return r.ID },
		// a business is its own tenant
		Tenant:   tenant.Columns{Business: "id"},
		TenantOf: func(b Business) (string, string) { return b.ID, "" },
		Fields: map[string]crud.Field{
			"name":      {Column: "name", Op: store.OpContains, Sortable: true},
			"email":     {Column: "email", Op: store.OpContains, Sortable: true},
			"status":    {Column: "status", Op: store.OpEq},
			"createdAt": {Column: "created_at", Sortable: true},
		},
		Views: []string{"dashboard"},
		Build: func(r AddBusinessRequest) Business {
			return Business{
				ID:        r.ID,
				Name:      r.Name,
				Email:     r.Email,
				Phone:     r.Phone,
				Address:   r.Address,
				Status:    StatusActive,
				CreatedBy: r.CreatedBy,
			}
		},
		Apply: func(b *Business, r EditBusinessRequest) {
			b.Name = r.Name
			b.Email = r.Email
			b.Phone = r.Phone
			b.Address = r.Address
			b.Status = r.Status
			b.UpdatedBy = r.UpdatedBy
		},
	}
}

func NewRepository(table store.Table[Business], deps crud.Deps) *Repository {
	return crud.New(Spec(), table, deps)
}
