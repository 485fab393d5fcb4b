package stock

import "go-pos/internal/authz"

type AddStockRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
	BranchID   string `json:"branchId" validate:"required"`
	ProductID  int    `json:"productId" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"gte=0"`
	CreatedBy  string `json:"createdBy" validate:"required"`
}

func (r *AddStockRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddStockRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}

type EditStockRequest struct {
	ID        int    `json:"id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditStockRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }

// RestockRequest adds received units to a branch, creating the stock row on
// first delivery.
type RestockRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
	BranchID   string `json:"branchId" validate:"required"`
	ProductID  int    `json:"productId" validate:"required,gt=0"`
	Quantity   int    `json:"quantity" validate:"required,gt=0"`
	UpdatedBy  string `json:"updatedBy" validate:"required"`
}

func (r *RestockRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}
