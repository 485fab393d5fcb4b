package product

import (
	"go-pos/internal/authz"

	"github.com/shopspring/decimal"
)

type AddProductRequest struct {
	BusinessID string          `json:"businessId" validate:"required"`
	CategoryID *int            `json:"categoryId" validate:"omitempty,gt=0"`
	SupplierID *int            `json:"supplierId" validate:"omitempty,gt=0"`
	Name       string          `json:"name" validate:"required,min=2,max=255"`
	SKU        string          `json:"sku" validate:"required,max=64"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	Cost       decimal.Decimal `json:"cost" validate:"gte=0"`
	CreatedBy  string          `json:"createdBy" validate:"required"`
}

func (r *AddProductRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddProductRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
}

type EditProductRequest struct {
	ID         int             `json:"id" validate:"required"`
	CategoryID *int            `json:"categoryId" validate:"omitempty,gt=0"`
	SupplierID *int            `json:"supplierId" validate:"omitempty,gt=0"`
	Name       string          `json:"name" validate:"required,min=2,max=255"`
	SKU        string          `json:"sku" validate:"required,max=64"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	Cost       decimal.Decimal `json:"cost" validate:"gte=0"`
	Status     string          `json:"status" validate:"required,oneof=active discontinued"`
	UpdatedBy  string          `json:"updatedBy" validate:"required"`
}

func (r *EditProductRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
