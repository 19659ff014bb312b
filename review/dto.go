package review

import "time"

type CreateReviewRequest struct {
	ProductID          uint   `json:"product_id" validate:"required"`
	Rating             int    `json:"rating" validate:"required,min=1,max=5"`
	Title              string `json:"title" validate:"max=200"`
	Content            string `json:"content" validate:"required"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

type ReviewImageInfo struct {
	ID               uint      `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	StoredFilename   string    `json:"stored_filename"`
	FileSize         int64     `json:"file_size"`
	SortOrder        int       `json:"sort_order"`
	CreatedAt        time.Time `json:"created_at"`
}

type ReviewInfo struct {
	ID                 uint              `json:"id"`
	ProductID          uint              `json:"product_id"`
	ProductName        string            `json:"product_name"`
	UserID             uint              `json:"user_id"`
	Username           string            `json:"username"`
	Rating             int               `json:"rating"`
	Title              string            `json:"title"`
	Content            string            `json:"content"`
	IsVerifiedPurchase bool              `json:"is_verified_purchase"`
	IsActive           bool              `json:"is_active"`
	HelpfulCount       int               `json:"helpful_count"`
	IsHelpful          bool              `json:"is_helpful"`
	Images             []ReviewImageInfo `json:"images"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewInfo `json:"reviews"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	Size    int          `json:"size"`
}

// HelpfulResult reports the vote state after a toggle.
type HelpfulResult struct {
	ReviewID     uint `json:"review_id"`
	Voted        bool `json:"voted"`
	HelpfulCount int  `json:"helpful_count"`
}
