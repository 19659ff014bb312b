package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shop is owned by a user kept in the external user service; only the raw
// owner id is stored here.
type Shop struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	OwnerUserID        uint              `gorm:"not null;index" json:"owner_user_id"`
	Name               string            `gorm:"size:100;not null" json:"name"`
	Description        string            `gorm:"type:text" json:"description"`
	BusinessNumber     string            `gorm:"size:20" json:"business_number"`
	Phone              string            `gorm:"size:20" json:"phone"`
	Email              string            `gorm:"size:100" json:"email"`
	Address            string            `gorm:"type:text" json:"address"`
	IsActive           bool              `gorm:"not null" json:"is_active"`
	MinOrderAmount     decimal.Decimal   `gorm:"type:decimal(10,2)" json:"min_order_amount"`
	DeliveryFee        decimal.Decimal   `gorm:"type:decimal(10,2)" json:"delivery_fee"`
	FreeDeliveryAmount *decimal.Decimal  `gorm:"type:decimal(10,2)" json:"free_delivery_amount"`
	BusinessHours      string            `gorm:"type:text" json:"business_hours"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy          uint              `gorm:"not null" json:"created_by"`
	UpdatedBy          *uint             `json:"updated_by"`
	Categories         []ProductCategory `gorm:"foreignKey:ShopID" json:"categories,omitempty"`
	Products           []Product         `gorm:"foreignKey:ShopID" json:"products,omitempty"`
}
