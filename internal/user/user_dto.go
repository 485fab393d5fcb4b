package user

import "go-pos/internal/authz"

type AddUserRequest struct {
	BusinessID      string `json:"businessId" validate:"required"`
	BranchID        string `json:"branchId" validate:"max=64"`
	RoleID          string `json:"roleId" validate:"required,uuid"`
	Name            string `json:"name" validate:"required,min=2,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	CreatedBy       string `json:"createdBy" validate:"required"`
}

func (r *AddUserRequest) StampCreatedBy(id string) { r.CreatedBy = id }

func (r *AddUserRequest) DefaultTenant(s authz.Scope) {
	if r.BusinessID == "" {
		r.BusinessID = s.BusinessID
	}
	if r.BranchID == "" {
		r.BranchID = s.BranchID
	}
}

type EditUserRequest struct {
	ID        string `json:"id" validate:"required,uuid"`
	BranchID  string `json:"branchId" validate:"max=64"`
	RoleID    string `json:"roleId" validate:"required,uuid"`
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Email     string `json:"email" validate:"required,email"`
	UpdatedBy string `json:"updatedBy" validate:"required"`
}

func (r *EditUserRequest) StampUpdatedBy(id string) { r.UpdatedBy = id }

// ChangePasswordRequest needs the current password only when users change
// their own.
type ChangePasswordRequest struct {
	ID              string `json:"id" validate:"required"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// MeResponse describes the signed-in actor to the presentation layer.
type MeResponse struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	RoleID      string   `json:"roleId"`
	RoleTitle   string   `json:"roleTitle"`
	Superadmin  bool     `json:"superadmin"`
	BusinessID  string   `json:"businessId,omitempty"`
	BranchID    string   `json:"branchId,omitempty"`
	Permissions []string `json:"permissions"`
}
