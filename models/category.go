package models

import "time"

// ProductCategory forms a tree scoped to a single shop via ParentID.
type ProductCategory struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ShopID      uint              `gorm:"not null;index" json:"shop_id"`
	ParentID    *uint             `gorm:"index" json:"parent_id"`
	Name        string            `gorm:"size:100;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	SortOrder   int               `gorm:"not null" json:"sort_order"`
	IsActive    bool              `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	Children    []ProductCategory `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}
