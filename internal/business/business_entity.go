package business

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Business is the tenant root. Its key is chosen by the caller (e.g. "acme")
// and is the businessId every other row carries.
type Business struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone     string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Address   string    `gorm:"column:address;type:text" json:"address"`
	Status    string    `gorm:"column:status;type:varchar(20);default:active" json:"status"`
	CreatedBy string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Business) TableName() string { return "businesses" }
