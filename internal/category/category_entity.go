package category

import "time"

type Category struct {
	ID          int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BusinessID  string    `gorm:"column:business_id;type:varchar(64);not null;uniqueIndex:uq_category_name" json:"businessId"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_category_name" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedBy   string    `gorm:"column:created_by;type:varchar(64)" json:"createdBy"`
	UpdatedBy   string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }
