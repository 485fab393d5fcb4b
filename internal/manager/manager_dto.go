package manager

import "go-pos/internal/authz"

type AddManagerRequest struct {
	BusinessID      string `json:"businessId" validate:"required"`
	BranchID        string `json:"branchId" validate:"required"`
	RoleID          string `json:"roleId" validate:"required,uuid"`
	Name            string `json:"name" validate:"required,min=2,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,phone"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	CreatedBy       string `json:"createdBy" validate:"required"`
}

func (r *AddManagerRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddManagerRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}

type EditManagerRequest struct {
	ID        string `json:"id" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditManagerRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
