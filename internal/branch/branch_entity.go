package branch

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Branch keys are caller-supplied short codes, unique across businesses.
type Branch struct {
	ID         string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	BusinessID string    `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Location   string    `gorm:"column:location;type:text" json:"location"`
	Phone      string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	ManagerID  *string   `gorm:"column:manager_id;type:uuid" json:"managerId"`
	Status     string    `gorm:"column:status;type:varchar(20);default:active" json:"status"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Branch) TableName() string { return "branches" }
