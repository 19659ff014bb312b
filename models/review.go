package models

import "time"

// Review is soft-deleted via IsActive. HelpfulCount is derived from
// ReviewHelpful rows and must equal their count after every toggle.
type Review struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	ProductID          uint          `gorm:"not null;index" json:"product_id"`
	UserID             uint          `gorm:"not null;index" json:"user_id"`
	Rating             int           `gorm:"not null" json:"rating"`
	Title              string        `gorm:"size:200" json:"title"`
	Content            string        `gorm:"type:text;not null" json:"content"`
	IsVerifiedPurchase bool          `gorm:"not null" json:"is_verified_purchase"`
	IsActive           bool          `gorm:"not null" json:"is_active"`
	HelpfulCount       int           `gorm:"not null" json:"helpful_count"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy          uint          `gorm:"not null" json:"created_by"`
	UpdatedBy          *uint         `json:"updated_by"`
	Images             []ReviewImage `gorm:"foreignKey:ReviewID" json:"images,omitempty"`
}

type ReviewImage struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReviewID         uint      `gorm:"not null;index" json:"review_id"`
	OriginalFilename string    `gorm:"not null" json:"original_filename"`
	StoredFilename   string    `gorm:"not null" json:"stored_filename"`
	FilePath         string    `gorm:"size:500;not null" json:"file_path"`
	FileSize         int64     `gorm:"not null" json:"file_size"`
	SortOrder        int       `gorm:"not null" json:"sort_order"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ReviewHelpful records one helpful vote per (review, user) pair.
type ReviewHelpful struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;uniqueIndex:idx_review_helpful_review_user" json:"review_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_helpful_review_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
