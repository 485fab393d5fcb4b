package stock

import (
	"context"
	"errors"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/product"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

const Resource = "stock"

type Repository = crud.Repository[Stock, AddStockRequest, EditStockRequest]

// References are the tables a stock row points into.
type References struct {
	Branches store.Table[branch.Branch]
	Products store.Table[product.Product]
}

// check rejects a branch or product from another business.
func (refs References) check(ctx context.Context, businessID, branchID string, productID int) error {
	if err := branch.Exists(ctx, refs.Branches, businessID, branchID); err != nil {
		return err
	}
	return product.Exists(ctx, refs.Products, businessID, productID)
}

func Spec(refs References) crud.Spec[Stock, AddStockRequest, EditStockRequest] {
	return crud.Spec[Stock, AddStockRequest, EditStockRequest]{
		Resource: Resource,
		Label:    "Stock",
		ParseKey: crud.Int,
		KeyOf:    func(s Stock) any { return s.ID },
		EditKey:  func(r EditStockRequest) any { return r.ID },
		Tenant:   tenant.Branch,
		TenantOf: func(s Stock) (string, string) { return s.BusinessID, s.BranchID },
		Fields: map[string]crud.Field{
			"branchId":  {Column: "branch_id", Op: store.OpEq, Sortable: true},
			"productId": {Column: "product_id", Op: store.OpEq, Parse: crud.Int},
			"quantity":  {Column: "quantity", Sortable: true},
		},
		Views: []string{"dashboard"},
		Build: func(r AddStockRequest) Stock {
			return Stock{
				BusinessID: r.BusinessID,
				BranchID:   r.BranchID,
				ProductID:  r.ProductID,
				Quantity:   r.Quantity,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(s *Stock, r EditStockRequest) {
			s.Quantity = r.Quantity
			s.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Stock, AddStockRequest, EditStockRequest]{
			BeforeCreate: func(ctx context.Context, _ authz.Actor, _ AddStockRequest, row *Stock) error {
				return refs.check(ctx, row.BusinessID, row.BranchID, row.ProductID)
			},
		},
	}
}

func NewRepository(table store.Table[Stock], refs References, deps crud.Deps) *Repository {
	return crud.New(Spec(refs), table, deps)
}

// Adjust moves the quantity of a (branch, product) pair by delta. It must run
// inside a transaction. A decrement below zero fails with a *crud.FieldError
// on field; an increment on a missing pair creates it.
func Adjust(ctx context.Context, table store.Table[Stock], businessID, branchID string, productID, delta int, field string) error {
	row, err := table.First(ctx, store.Filter{
		store.Eq("business_id", businessID),
		store.Eq("branch_id", branchID),
		store.Eq("product_id", productID),
	})
	if errors.Is(err, store.ErrNotFound) {
		if delta < 0 {
			return crud.NewFieldError(field, "Product is out of stock")
		}
		return table.Create(ctx, &Stock{
			BusinessID: businessID,
			BranchID:   branchID,
			ProductID:  productID,
			Quantity:   delta,
		})
	}
	if err != nil {
		return err
	}

	if row.Quantity+delta < 0 {
		return crud.NewFieldError(field, "Only %d left in stock", row.Quantity)
	}
	row.Quantity += delta
	return table.Save(ctx, row)
}
