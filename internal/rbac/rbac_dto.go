package rbac

type AddRoleRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	CreatedBy   string `json:"createdBy" validate:"required"`
}

func (r *AddRoleRequest) StampCreatedBy(id string) { r.CreatedBy = id }

type EditRoleRequest struct {
	ID          string `json:"id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	UpdatedBy   string `json:"updatedBy" validate:"required"`
}

func (r *EditRoleRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }

type AddPermissionRequest struct {
	Code        string `json:"code" validate:"required,permcode"`
	Description string `json:"description" validate:"max=500"`
	CreatedBy   string `json:"createdBy" validate:"required"`
}

func (r *AddPermissionRequest) StampCreatedBy(id string) { r.CreatedBy = id }

type EditPermissionRequest struct {
	ID          int    `json:"id" validate:"required"`
	Code        string `json:"code" validate:"required,permcode"`
	Description string `json:"description" validate:"max=500"`
	UpdatedBy   string `json:"updatedBy" validate:"required"`
}

func (r *EditPermissionRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }

// SetPermissionsRequest replaces the full permission list of a role.
type SetPermissionsRequest struct {
	RoleID        string `json:"roleId" validate:"required,uuid"`
	PermissionIDs []int  `json:"permissionIds" validate:"dive,gt=0"`
}
