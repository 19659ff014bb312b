package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductInactive     ProductStatus = "INACTIVE"
	ProductOutOfStock   ProductStatus = "OUT_OF_STOCK"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

type Product struct {
	ID               uint                 `gorm:"primaryKey" json:"id"`
	ShopID           uint                 `gorm:"not null;index" json:"shop_id"`
	CategoryID       *uint                `gorm:"index" json:"category_id"`
	Name             string               `gorm:"size:200;not null" json:"name"`
	Description      string               `gorm:"type:text" json:"description"`
	ShortDescription string               `gorm:"type:text" json:"short_description"`
	Price            decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"price"`
	SalePrice        *decimal.Decimal     `gorm:"type:decimal(10,2)" json:"sale_price"`
	CostPrice        *decimal.Decimal     `gorm:"type:decimal(10,2)" json:"cost_price"`
	StockQuantity    int                  `gorm:"not null" json:"stock_quantity"`
	MinStockQuantity int                  `json:"min_stock_quantity"`
	MaxOrderQuantity *int                 `json:"max_order_quantity"`
	TrackStock       bool                 `gorm:"not null" json:"track_stock"`
	Status           ProductStatus        `gorm:"size:20;not null;index" json:"status"`
	IsFeatured       bool                 `gorm:"not null" json:"is_featured"`
	Slug             *string              `gorm:"size:200;uniqueIndex" json:"slug"`
	MetaTitle        string               `gorm:"size:200" json:"meta_title"`
	MetaDescription  string               `gorm:"type:text" json:"meta_description"`
	Weight           *decimal.Decimal     `gorm:"type:decimal(8,2)" json:"weight"`
	Dimensions       string               `gorm:"size:100" json:"dimensions"`
	RatingAverage    float64              `gorm:"not null" json:"rating_average"`
	RatingCount      int                  `gorm:"not null" json:"rating_count"`
	CreatedAt        time.Time            `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time            `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy        uint                 `gorm:"not null" json:"created_by"`
	UpdatedBy        *uint                `json:"updated_by"`
	Images           []ProductImage       `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	OptionGroups     []ProductOptionGroup `gorm:"foreignKey:ProductID" json:"option_groups,omitempty"`
	Reviews          []Review             `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

// ProductImage keeps at most one row per product flagged IsMain.
type ProductImage struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductID        uint      `gorm:"not null;index" json:"product_id"`
	OriginalFilename string    `gorm:"not null" json:"original_filename"`
	StoredFilename   string    `gorm:"not null" json:"stored_filename"`
	FilePath         string    `gorm:"size:500;not null" json:"file_path"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	IsMain           bool      `gorm:"not null" json:"is_main"`
	AltText          string    `json:"alt_text"`
	SortOrder        int       `gorm:"not null" json:"sort_order"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	CreatedBy        uint      `gorm:"not null" json:"created_by"`
}

type OptionType string

const (
	OptionSelect   OptionType = "SELECT"
	OptionRadio    OptionType = "RADIO"
	OptionCheckbox OptionType = "CHECKBOX"
	OptionText     OptionType = "TEXT"
)

type ProductOptionGroup struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProductID  uint            `gorm:"not null;index" json:"product_id"`
	Name       string          `gorm:"size:100;not null" json:"name"`
	Type       OptionType      `gorm:"size:20;not null" json:"type"`
	IsRequired bool            `gorm:"not null" json:"is_required"`
	SortOrder  int             `gorm:"not null" json:"sort_order"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Options    []ProductOption `gorm:"foreignKey:OptionGroupID" json:"options,omitempty"`
}

type ProductOption struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OptionGroupID   uint            `gorm:"not null;index" json:"option_group_id"`
	Name            string          `gorm:"size:100;not null" json:"name"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"additional_price"`
	StockQuantity   *int            `json:"stock_quantity"`
	IsActive        bool            `gorm:"not null" json:"is_active"`
	SortOrder       int             `gorm:"not null" json:"sort_order"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}
