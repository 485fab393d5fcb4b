package stock

import "time"

// Stock is the quantity of one product held by one branch. There is at most
// one row per (branch, product).
type Stock struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessID string    `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	BranchID   string    `gorm:"column:branch_id;type:varchar(64);not null;uniqueIndex:uq_stock_branch_product" json:"branchId"`
	ProductID  int       `gorm:"column:product_id;not null;uniqueIndex:uq_stock_branch_product" json:"productId"`
	Quantity   int       `gorm:"column:quantity;not null;default:0" json:"quantity"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Stock) TableName() string { return "stocks" }
