package salesman

import "go-pos/internal/authz"

type AddSalesmanRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
	BranchID   string `json:"branchId" validate:"required"`
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	CreatedBy  string `json:"createdBy" validate:"required"`
}

func (r *AddSalesmanRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddSalesmanRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}

type EditSalesmanRequest struct {
	ID        string `json:"id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditSalesmanRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
