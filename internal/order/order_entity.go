package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID           int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessID   string          `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	BranchID     string          `gorm:"column:branch_id;type:varchar(64);not null;index" json:"branchId"`
	SalesmanID   *string         `gorm:"column:salesman_id;type:uuid" json:"salesmanId"`
	CustomerName string          `gorm:"column:customer_name;type:varchar(255)" json:"customerName"`
	Status       string          `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	Total        decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Items        []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedBy    string          `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy    string          `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID        int             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID   int             `gorm:"column:order_id;not null;index" json:"orderId"`
	ProductID int             `gorm:"column:product_id;not null" json:"productId"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unitPrice"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
}

func (OrderItem) TableName() string { return "order_items" }
