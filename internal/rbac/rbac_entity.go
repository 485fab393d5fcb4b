package rbac

import "time"

// Role is a named bundle of permissions. A superadmin role is granted every
// permission and places its holders outside tenant scope.
type Role struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;type:varchar(100);not null;uniqueIndex" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Superadmin  bool      `gorm:"column:superadmin;not null;default:false" json:"superadmin"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy   string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Role) TableName() string { return "roles" }

type Permission struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code        string    `gorm:"column:code;type:varchar(100);not null;uniqueIndex" json:"code"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy   string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Permission) TableName() string { return "permissions" }

type RolePermission struct {
	ID           int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RoleID       string    `gorm:"column:role_id;type:uuid;not null;uniqueIndex:uq_role_permission" json:"roleId"`
	PermissionID int       `gorm:"column:permission_id;not null;uniqueIndex:uq_role_permission" json:"permissionId"`
	CreatedBy    string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (RolePermission) TableName() string { return "role_permissions" }
