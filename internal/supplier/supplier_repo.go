package supplier

import (
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

const Resource = "supplier"

type Repository = crud.Repository[Supplier, AddSupplierRequest, EditSupplierRequest]

func Spec() crud.Spec[Supplier, AddSupplierRequest, EditSupplierRequest] {
	return crud.Spec[Supplier, AddSupplierRequest, EditSupplierRequest]{
		Resource: Resource,
		Label:    "Supplier",
		ParseKey: crud.Int,
		KeyOf:    func(s Supplier) any { return s.ID },
		EditKey:  func(r EditSupplierRequest) any { return r.ID },
		Tenant:   tenant.Business,
		TenantOf: func(s Supplier) (string, string) { return s.BusinessID, "" },
		Fields: map[string]crud.Field{
			"name":       {Column: "name", Op: store.OpContains, Sortable: true},
			"email":      {Column: "email", Op: store.OpContains, Sortable: true},
			"phone":      {Column: "phone", Op: store.OpContains},
			"businessId": {Column: "business_id", Op: store.OpEq},
		},
		Build: func(r AddSupplierRequest) Supplier {
			return Supplier{
				BusinessID: r.BusinessID,
				Name:       r.Name,
				Email:      r.Email,
				Phone:      r.Phone,
				Address:    r.Address,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(s *Supplier, r EditSupplierRequest) {
			s.Name = r.Name
			s.Email = r.Email
			s.Phone = r.Phone
			s.Address = r.Address
			s.UpdatedBy = r.UpdatedBy
		},
	}
}

func NewRepository(table store.Table[Supplier], deps crud.Deps) *Repository {
	return crud.New(Spec(), table, deps)
}
