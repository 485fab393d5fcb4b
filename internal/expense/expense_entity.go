package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID         int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessID string          `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	BranchID   string          `gorm:"column:branch_id;type:varchar(64);not null;index" json:"branchId"`
	Title      string          `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Category   string          `gorm:"column:category;type:varchar(100)" json:"category"`
	Amount     decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	SpentAt    time.Time       `gorm:"column:spent_at;not null;index" json:"spentAt"`
	Note       string          `gorm:"column:note;type:text" json:"note"`
	CreatedBy  string          `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string          `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Expense) TableName() string { return "expenses" }
