package category

import (
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

const Resource = "category"

type Repository = crud.Repository[Category, AddCategoryRequest, EditCategoryRequest]

func Spec() crud.Spec[Category, AddCategoryRequest, EditCategoryRequest] {
	return crud.Spec[Category, AddCategoryRequest, EditCategoryRequest]{
		Resource: Resource,
		Label:    "Category",
		ParseKey: crud.Int,
		KeyOf:    func(c Category) any { return c.ID },
		EditKey:  func(r EditCategoryRequest) any { return r.ID },
		Tenant:   tenant.Business,
		TenantOf: func(c Category) (string, string) { return c.BusinessID, "" },
		Fields: map[string]crud.Field{
			"name":       {Column: "name", Op: store.OpContains, Sortable: true},
			"businessId": {Column: "business_id", Op: store.OpEq},
			"createdAt":  {Column: "created_at", Sortable: true},
		},
		Views: []string{"product"},
		Build: func(r AddCategoryRequest) Category {
			return Category{
				BusinessID:  r.BusinessID,
				Name:        r.Name,
				Description: r.Description,
				CreatedBy:   r.CreatedBy,
			}
		},
		Apply: func(c *Category, r EditCategoryRequest) {
			c.Name = r.Name
			c.Description = r.Description
			c.UpdatedBy = r.UpdatedBy
		},
	}
}

func NewRepository(table store.Table[Category], deps crud.Deps) *Repository {
	return crud.New(Spec(), table, deps)
}
