package category

import "go-pos/internal/authz"

type AddCategoryRequest struct {
	BusinessID  string `json:"businessId" validate:"required"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=1000"`
	CreatedBy   string `json:"createdBy" validate:"required"`
}

func (r *AddCategoryRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddCategoryRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
}

type EditCategoryRequest struct {
	ID          int    `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"max=1000"`
	UpdatedBy   string `json:"updatedBy" validate:"required"`
}

func (r *EditCategoryRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
