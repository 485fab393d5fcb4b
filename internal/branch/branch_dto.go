package branch

import "go-pos/internal/authz"

type AddBranchRequest struct {
	ID         string `json:"id" validate:"required,min=2,max=64,alphanum"`
	BusinessID string `json:"businessId" validate:"required"`
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Location   string `json:"location" validate:"max=500"`
	Phone      string `json:"phone" validate:"omitempty,phone"`
	CreatedBy  string `json:"createdBy" validate:"required"`
}

func (r *AddBranchRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddBranchRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
}

type EditBranchRequest struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Location  string `json:"location" validate:"max=500"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Status    string `json:"status" validate:"required,oneof=active inactive"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditBranchRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
