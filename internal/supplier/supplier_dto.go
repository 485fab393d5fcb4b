package supplier

import "go-pos/internal/authz"

type AddSupplierRequest struct {
	BusinessID string `json:"businessId" validate:"required"`
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"required,phone"`
	Address    string `json:"address" validate:"max=500"`
	CreatedBy  string `json:"createdBy" validate:"required"`
}

func (r *AddSupplierRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddSupplierRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
}

type EditSupplierRequest struct {
	ID        int    `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"required,phone"`
	Address   string `json:"address" validate:"max=500"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditSupplierRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
