package user

import "time"

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

type User struct {
	ID           string     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BusinessID   string     `gorm:"column:business_id;type:varchar(64);index" json:"businessId"`
	BranchID     string     `gorm:"column:branch_id;type:varchar(64)" json:"branchId"`
	RoleID       string     `gorm:"column:role_id;type:uuid;not null" json:"roleId"`
	Name         string     `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;type:text;not null" json:"-"`
	Status       string     `gorm:"column:status;type:varchar(20);not null;default:active" json:"status"`
	IsDeleted    bool       `gorm:"column:is_deleted;not null;default:false;index" json:"isDeleted"`
	DeletedAt    *time.Time `gorm:"column:deleted_at" json:"deletedAt"`
	CreatedBy    string     `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy    string     `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
