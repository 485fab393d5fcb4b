package product

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive       = "active"
	StatusDiscontinued = "discontinued"
)

type Product struct {
	ID         int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessID string          `gorm:"column:business_id;type:varchar(64);not null;uniqueIndex:uq_product_sku" json:"businessId"`
	CategoryID *int            `gorm:"column:category_id" json:"categoryId"`
	SupplierID *int            `gorm:"column:supplier_id" json:"supplierId"`
	Name       string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	SKU        string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:uq_product_sku" json:"sku"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Cost       decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null" json:"cost"`
	Status     string          `gorm:"column:status;type:varchar(20);default:active" json:"status"`
	CreatedBy  string          `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string          `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }
