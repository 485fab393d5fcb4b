package product

import (
	"context"
	"errors"

	"go-pos/internal/authz"
	"go-pos/internal/category"
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/supplier"
	"go-pos/internal/tenant"
)

const Resource = "product"

type Repository = crud.Repository[Product, AddProductRequest, EditProductRequest]

// References are the tables a product points into.
type References struct {
	Categories store.Table[category.Category]
	Suppliers  store.Table[supplier.Supplier]
}

func Spec(refs References) crud.Spec[Product, AddProductRequest, EditProductRequest] {
	return crud.Spec[Product, AddProductRequest, EditProductRequest]{
		Resource: Resource,
		Label:    "Product",
		ParseKey: crud.Int,
		KeyOf:    func(p Product) any { return p.ID },
		EditKey:  func(r EditProductRequest) any { return r.ID },
		Tenant:   tenant.Business,
		TenantOf: func(p Product) (string, string) { return p.BusinessID, "" },
		Fields: map[string]crud.Field{
			"name":       {Column: "name", Op: store.OpContains, Sortable: true},
			"sku":        {Column: "sku", Op: store.OpEq, Sortable: true},
			"categoryId": {Column: "category_id", Op: store.OpEq, Parse: crud.Int},
			"supplierId": {Column: "supplier_id", Op: store.OpEq, Parse: crud.Int},
			"status":     {Column: "status", Op: store.OpEq},
			"price":      {Column: "price", Sortable: true},
			"businessId": {Column: "business_id", Op: store.OpEq},
		},
		Views: []string{"stock", "dashboard"},
		Build: func(r AddProductRequest) Product {
			return Product{
				BusinessID: r.BusinessID,
				CategoryID: r.CategoryID,
				SupplierID: r.SupplierID,
				Name:       r.Name,
				SKU:        r.SKU,
				Price:      r.Price,
				Cost:       r.Cost,
				Status:     StatusActive,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(p *Product, r EditProductRequest) {
			p.CategoryID = r.CategoryID
			p.SupplierID = r.SupplierID
			p.Name = r.Name
			p.SKU = r.SKU
			p.Price = r.Price
			p.Cost = r.Cost
			p.Status = r.Status
			p.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Product, AddProductRequest, EditProductRequest]{
			BeforeCreate: func(ctx context.Context, _ authz.Actor, _ AddProductRequest, row *Product) error {
				return refs.check(ctx, *row)
			},
			BeforeUpdate: func(ctx context.Context, _ authz.Actor, _ EditProductRequest, _ Product, row *Product) error {
				return refs.check(ctx, *row)
			},
		},
	}
}

// check rejects category or supplier ids from another business.
func (refs References) check(ctx context.Context, p Product) error {
	if p.CategoryID != nil && refs.Categories != nil {
		_, err := refs.Categories.First(ctx, store.Filter{
			store.Eq("id", *p.CategoryID), store.Eq("business_id", p.BusinessID),
		})
		if errors.Is(err, store.ErrNotFound) {
			return crud.NewFieldError("categoryId", "Category not found")
		}
		if err != nil {
			return err
		}
	}
	if p.SupplierID != nil && refs.Suppliers != nil {
		_, err := refs.Suppliers.First(ctx, store.Filter{
			store.Eq("id", *p.SupplierID), store.Eq("business_id", p.BusinessID),
		})
		if errors.Is(err, store.ErrNotFound) {
			return crud.NewFieldError("supplierId", "Supplier not found")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func NewRepository(table store.Table[Product], refs References, deps crud.Deps) *Repository {
	return crud.New(Spec(refs), table, deps)
}

// Exists fails with a field error on productId unless productID is a product
// of businessID.
func Exists(ctx context.Context, table store.Table[Product], businessID string, productID int) error {
	_, err := table.First(ctx, store.Filter{
		store.Eq("id", productID),
		store.Eq("business_id", businessID),
	})
	if errors.Is(err, store.ErrNotFound) {
		return crud.NewFieldError("productId", "Product not found")
	}
	return err
}
