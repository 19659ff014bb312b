package product

import (
	"time"

	"github.com/BerryWebFounder/berryweb-shop/models"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	ShopID           uint             `json:"shop_id" validate:"required"`
	CategoryID       *uint            `json:"category_id"`
	Name             string           `json:"name" validate:"required,max=200"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	CostPrice        *decimal.Decimal `json:"cost_price"`
	StockQuantity    int              `json:"stock_quantity" validate:"min=0"`
	MinStockQuantity int              `json:"min_stock_quantity" validate:"min=0"`
	MaxOrderQuantity *int             `json:"max_order_quantity"`
	TrackStock       *bool            `json:"track_stock"`
	IsFeatured       bool             `json:"is_featured"`
	Slug             *string          `json:"slug" validate:"omitempty,max=200"`
	MetaTitle        string           `json:"meta_title" validate:"max=200"`
	MetaDescription  string           `json:"meta_description"`
	Weight           *decimal.Decimal `json:"weight"`
	Dimensions       string           `json:"dimensions" validate:"max=100"`
}

type ProductImageInfo struct {
	ID               uint      `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	StoredFilename   string    `json:"stored_filename"`
	FileSize         int64     `json:"file_size"`
	IsMain           bool      `json:"is_main"`
	AltText          string    `json:"alt_text"`
	SortOrder        int       `json:"sort_order"`
	CreatedAt        time.Time `json:"created_at"`
}

type ProductOptionInfo struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
	StockQuantity   *int            `json:"stock_quantity"`
	IsActive        bool            `json:"is_active"`
	SortOrder       int             `json:"sort_order"`
}

type ProductOptionGroupInfo struct {
	ID         uint                `json:"id"`
	Name       string              `json:"name"`
	Type       models.OptionType   `json:"type"`
	IsRequired bool                `json:"is_required"`
	SortOrder  int                 `json:"sort_order"`
	Options    []ProductOptionInfo `json:"options"`
}

// ProductSummary is the listing row shape: main image only, no options.
type ProductSummary struct {
	ID               uint              `json:"id"`
	Name             string            `json:"name"`
	ShortDescription string            `json:"short_description"`
	Price            decimal.Decimal   `json:"price"`
	SalePrice        *decimal.Decimal  `json:"sale_price"`
	IsFeatured       bool              `json:"is_featured"`
	RatingAverage    float64           `json:"rating_average"`
	RatingCount      int               `json:"rating_count"`
	MainImage        *ProductImageInfo `json:"main_image"`
	CreatedAt        time.Time         `json:"created_at"`
}

type ProductInfo struct {
	ID               uint                     `json:"id"`
	ShopID           uint                     `json:"shop_id"`
	ShopName         string                   `json:"shop_name"`
	CategoryID       *uint                    `json:"category_id"`
	CategoryName     *string                  `json:"category_name"`
	Name             string                   `json:"name"`
	Description      string                   `json:"description"`
	ShortDescription string                   `json:"short_description"`
	Price            decimal.Decimal          `json:"price"`
	SalePrice        *decimal.Decimal         `json:"sale_price"`
	StockQuantity    int                      `json:"stock_quantity"`
	MinStockQuantity int                      `json:"min_stock_quantity"`
	MaxOrderQuantity *int                     `json:"max_order_quantity"`
	TrackStock       bool                     `json:"track_stock"`
	Status           models.ProductStatus     `json:"status"`
	IsFeatured       bool                     `json:"is_featured"`
	Slug             *string                  `json:"slug"`
	MetaTitle        string                   `json:"meta_title"`
	MetaDescription  string                   `json:"meta_description"`
	Weight           *decimal.Decimal         `json:"weight"`
	Dimensions       string                   `json:"dimensions"`
	RatingAverage    float64                  `json:"rating_average"`
	RatingCount      int                      `json:"rating_count"`
	Images           []ProductImageInfo       `json:"images"`
	OptionGroups     []ProductOptionGroupInfo `json:"option_groups"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

type ProductListResponse struct {
	Products []ProductSummary `json:"products"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Size     int              `json:"size"`
}

type CreateCategoryRequest struct {
	ShopID      uint   `json:"shop_id" validate:"required"`
	ParentID    *uint  `json:"parent_id"`
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// UpdateCategoryRequest uses pointers so omitted fields stay untouched.
type UpdateCategoryRequest struct {
	ParentID    *uint   `json:"parent_id"`
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type CategoryInfo struct {
	ID          uint           `json:"id"`
	ShopID      uint           `json:"shop_id"`
	ParentID    *uint          `json:"parent_id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	SortOrder   int            `json:"sort_order"`
	IsActive    bool           `json:"is_active"`
	Children    []CategoryInfo `json:"children,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
