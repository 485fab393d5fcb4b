package supplier

import "time"

type Supplier struct {
	ID         int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessID string    `gorm:"column:business_id;type:varchar(64);not null;index" json:"businessId"`
	Name       string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone      string    `gorm:"column:phone;type:varchar(20)" json:"phone"`
	Address    string    `gorm:"column:address;type:text" json:"address"`
	CreatedBy  string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy  string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Supplier) TableName() string { return "suppliers" }
