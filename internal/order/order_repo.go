package order

import (
	"context"
	"errors"
	"fmt"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/product"
	"go-pos/internal/stock"
	"go-pos/internal/store"
	"go-pos/internal/tenant"

	"github.com/shopspring/decimal"
)

const Resource = "order"

type Repository = crud.Repository[Order, AddOrderRequest, EditOrderRequest]

// Inventory is what placing and cancelling an order touches.
type Inventory struct {
	Branches store.Table[branch.Branch]
	Products store.Table[product.Product]
	Stocks   store.Table[stock.Stock]
}

var transitions = map[string][]string{
	StatusPending: {StatusCompleted, StatusCancelled},
}

func Spec(inv Inventory) crud.Spec[Order, AddOrderRequest, EditOrderRequest] {
	return crud.Spec[Order, AddOrderRequest, EditOrderRequest]{
		Resource: Resource,
		Label:    "Order",
		ParseKey: crud.Int,
		KeyOf:    func(o Order) any { return o.ID },
		EditKey:  func(r EditOrderRequest) any { return r.ID },
		Tenant:   tenant.Branch,
		TenantOf: func(o Order) (string, string) { return o.BusinessID, o.BranchID },
		Fields: map[string]crud.Field{
			"status":       {Column: "status", Op: store.OpIn, Sortable: true},
			"branchId":     {Column: "branch_id", Op: store.OpEq},
			"salesmanId":   {Column: "salesman_id", Op: store.OpEq},
			"customerName": {Column: "customer_name", Op: store.OpContains, Sortable: true},
			"total":        {Column: "total", Sortable: true},
			"createdAt":    {Column: "created_at", Sortable: true},
		},
		Views: []string{"stock", "dashboard"},
		Build: func(r AddOrderRequest) Order {
			o := Order{
				BusinessID:   r.BusinessID,
				BranchID:     r.BranchID,
				SalesmanID:   r.SalesmanID,
				CustomerName: r.CustomerName,
				Status:       StatusPending,
				CreatedBy:    r.CreatedBy,
			}
			for _, it := range r.Items {
				o.Items = append(o.Items, OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
			}
			return o
		},
		Apply: func(o *Order, r EditOrderRequest) {
			o.Status = r.Status
			o.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Order, AddOrderRequest, EditOrderRequest]{
			BeforeCreate: func(ctx context.Context, _ authz.Actor, _ AddOrderRequest, row *Order) error {
				return inv.place(ctx, row)
			},
			BeforeUpdate: func(ctx context.Context, _ authz.Actor, _ EditOrderRequest, before Order, row *Order) error {
				if before.Status == row.Status {
					return nil
				}
				if !allowed(before.Status, row.Status) {
					return crud.NewFieldError("status", "Cannot change status from %s to %s", before.Status, row.Status)
				}
				if row.Status == StatusCancelled {
					return inv.restore(ctx, before)
				}
				return nil
			},
			BeforeDelete: func(ctx context.Context, _ authz.Actor, row Order) error {
				if row.Status == StatusPending {
					return inv.restore(ctx, row)
				}
				return nil
			},
		},
	}
}

func NewRepository(table store.Table[Order], inv Inventory, deps crud.Deps) *Repository {
	return crud.New(Spec(inv), table, deps)
}

func allowed(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// place prices every line from the catalogue and takes the units out of the
// branch's stock.
func (inv Inventory) place(ctx context.Context, o *Order) error {
	if err := branch.Exists(ctx, inv.Branches, o.BusinessID, o.BranchID); err != nil {
		return err
	}

	total := decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]

		p, err := inv.Products.First(ctx, store.Filter{
			store.Eq("id", it.ProductID),
			store.Eq("business_id", o.BusinessID),
			store.Eq("status", product.StatusActive),
		})
		if errors.Is(err, store.ErrNotFound) {
			return crud.NewFieldError(fmt.Sprintf("items[%d].productId", i), "Product not found")
		}
		if err != nil {
			return err
		}

		if err := stock.Adjust(ctx, inv.Stocks, o.BusinessID, o.BranchID, it.ProductID, -it.Quantity, fmt.Sprintf("items[%d].quantity", i)); err != nil {
			return err
		}

		it.UnitPrice = p.Price
		it.Subtotal = p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(it.Subtotal)
	}
	o.Total = total
	return nil
}

func (inv Inventory) restore(ctx context.Context, o Order) error {
	for i, it := range o.Items {
		if err := stock.Adjust(ctx, inv.Stocks, o.BusinessID, o.BranchID, it.ProductID, it.Quantity, fmt.Sprintf("items[%d].quantity", i)); err != nil {
			return err
		}
	}
	return nil
}
