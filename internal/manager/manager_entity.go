package manager

import "time"

// Manager runs one branch. Each manager owns a login (UserID) and is linked
// back from Branch.ManagerID.
type Manager struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BusinessID string    `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	BranchID   string    `gorm:"column:branch_id;type:varchar(64);not null;index" json:"branchId"`
	UserID     string    `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"userId"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone      string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Manager) TableName() string { return "managers" }
