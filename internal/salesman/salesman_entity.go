package salesman

import "time"

type Salesman struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	BusinessID string    `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	BranchID   string    `gorm:"column:branch_id;type:varchar(64);not null;index" json:"branchId"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Phone      string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Email      string    `gorm:"column:email;type:varchar(255)" json:"email"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Salesman) TableName() string { return "salesmen" }
