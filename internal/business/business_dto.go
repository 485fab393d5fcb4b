package business

type AddBusinessRequest struct {
	ID        string `json:"id" validate:"required,min=2,max=64,alphanum"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Address   string `json:"address" validate:"max=500"`
	CreatedBy string `json:"createdBy" validate:"required"`
}

func (r *AddBusinessRequest) StampCreatedBy(id string) { r.CreatedBy = id }

type EditBusinessRequest struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Address   string `json:"address" validate:"max=500"`
	Status    string `json:"status" validate:"required,oneof=active inactive"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditBusinessRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }
