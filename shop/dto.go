package shop

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateShopRequest struct {
	Name               string           `json:"name" validate:"required,max=100"`
	Description        string           `json:"description"`
	BusinessNumber     string           `json:"business_number" validate:"max=20"`
	Phone              string           `json:"phone" validate:"max=20"`
	Email              string           `json:"email" validate:"omitempty,email,max=100"`
	Address            string           `json:"address"`
	MinOrderAmount     *decimal.Decimal `json:"min_order_amount"`
	DeliveryFee        *decimal.Decimal `json:"delivery_fee"`
	FreeDeliveryAmount *decimal.Decimal `json:"free_delivery_amount"`
	BusinessHours      string           `json:"business_hours"`
}

// UpdateShopRequest carries only the fields to change; nil leaves the
// stored value untouched.
type UpdateShopRequest struct {
	Name               *string          `json:"name" validate:"omitempty,max=100"`
	Description        *string          `json:"description"`
	BusinessNumber     *string          `json:"business_number" validate:"omitempty,max=20"`
	Phone              *string          `json:"phone" validate:"omitempty,max=20"`
	Email              *string          `json:"email" validate:"omitempty,email,max=100"`
	Address            *string          `json:"address"`
	MinOrderAmount     *decimal.Decimal `json:"min_order_amount"`
	DeliveryFee        *decimal.Decimal `json:"delivery_fee"`
	FreeDeliveryAmount *decimal.Decimal `json:"free_delivery_amount"`
	BusinessHours      *string          `json:"business_hours"`
	IsActive           *bool            `json:"is_active"`
}

type ShopInfo struct {
	ID                 uint             `json:"id"`
	OwnerUserID        uint             `json:"owner_user_id"`
	OwnerUsername      string           `json:"owner_username"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	BusinessNumber     string           `json:"business_number"`
	Phone              string           `json:"phone"`
	Email              string           `json:"email"`
	Address            string           `json:"address"`
	IsActive           bool             `json:"is_active"`
	MinOrderAmount     decimal.Decimal  `json:"min_order_amount"`
	DeliveryFee        decimal.Decimal  `json:"delivery_fee"`
	FreeDeliveryAmount *decimal.Decimal `json:"free_delivery_amount"`
	BusinessHours      string           `json:"business_hours"`
	ProductCount       int64            `json:"product_count"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

type ShopListResponse struct {
	Shops []ShopInfo `json:"shops"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
}
