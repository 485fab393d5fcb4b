package order

import "go-pos/internal/authz"

type AddOrderItem struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

type AddOrderRequest struct {
	BusinessID   string         `json:"businessId" validate:"required"`
	BranchID     string         `json:"branchId" validate:"required"`
	SalesmanID   *string        `json:"salesmanId" validate:"omitempty,uuid"`
	CustomerName string         `json:"customerName" validate:"max=255"`
	Items        []AddOrderItem `json:"items" validate:"required,min=1,dive"`
	CreatedBy    string         `json:"createdBy" validate:"required"`
}

func (r *AddOrderRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddOrderRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}

// EditOrderRequest only moves an order through its status lifecycle; lines
// are immutable once placed.
type EditOrderRequest struct {
	ID        int    `json:"id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=pending completed cancelled"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditOrderRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
