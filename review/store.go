package review

import (
	"errors"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindActiveByID(reviewID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("id = ? AND is_active = ?", reviewID, true).First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *Store) FindActiveProduct(productID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("id = ? AND status = ?", productID, models.ProductActive).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProduct loads regardless of status; used when rendering a review
// whose product may have left ACTIVE since.
func (s *Store) FindProduct(productID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) ListActiveByProduct(productID uint, offset, limit int) ([]models.Review, int64, error) {
	query := s.db.Model(&models.Review{}).
		Where("product_id = ? AND is_active = ?", productID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error
	return reviews, total, err
}

// ExistsActiveByProductAndUser backs the one-active-review-per-(product,user)
// rule.
func (s *Store) ExistsActiveByProductAndUser(productID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Review{}).
		Where("product_id = ? AND user_id = ? AND is_active = ?", productID, userID, true).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) Images(reviewID uint) ([]models.ReviewImage, error) {
	var images []models.ReviewImage
	err := s.db.Where("review_id = ?", reviewID).Order("sort_order ASC").Find(&images).Error
	return images, err
}

func (s *Store) HasVoted(reviewID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ReviewHelpful{}).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Count(&count).Error
	return count > 0, err
}

// CreateWithImages persists the review with its image rows and recomputes
// the product rating aggregate, all in one transaction.
func (s *Store) CreateWithImages(review *models.Review, images []models.ReviewImage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ReviewID = review.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return recomputeRating(tx, review.ProductID)
	})
}

// Save writes review changes and recomputes the product rating aggregate in
// the same transaction; covers rating updates and soft deletes.
func (s *Store) Save(review *models.Review) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.ProductID)
	})
}

// ToggleHelpful flips the (review, user) vote and moves helpful_count with
// it as a single atomic unit. The unique index on (review_id, user_id)
// backstops concurrent inserts; the counter moves via guarded SQL
// expressions rather than a read-modify-write in Go.
func (s *Store) ToggleHelpful(reviewID, userID uint) (voted bool, count int, err error) {
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.Where("id = ? AND is_active = ?", reviewID, true).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrReviewNotFound
			}
			return err
		}

		// The delete doubles as the atomic presence check.
		res := tx.Where("review_id = ? AND user_id = ?", reviewID, userID).
			Delete(&models.ReviewHelpful{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			voted = false
			if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
				UpdateColumn("helpful_count", gorm.Expr("helpful_count - 1")).Error; err != nil {
				return err
			}
		} else {
			vote := models.ReviewHelpful{ReviewID: reviewID, UserID: userID}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			voted = true
			if err := tx.Model(&models.Review{}).Where("id = ?", reviewID).
				UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1")).Error; err != nil {
				return err
			}
		}

		var updated models.Review
		if err := tx.Select("helpful_count").First(&updated, reviewID).Error; err != nil {
			return err
		}
		count = updated.HelpfulCount
		return nil
	})
	return voted, count, err
}

// CountVotes exists for invariant checks: helpful_count must always equal
// this value.
func (s *Store) CountVotes(reviewID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ReviewHelpful{}).Where("review_id = ?", reviewID).Count(&count).Error
	return count, err
}

// recomputeRating rebuilds the product's rating aggregate from its active
// reviews; zeroes when none remain.
func recomputeRating(tx *gorm.DB, productID uint) error {
	var agg struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&models.Review{}).
		Where("product_id = ? AND is_active = ?", productID, true).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Scan(&agg).Error
	if err != nil {
		return err
	}

	return tx.Model(&models.Product{}).Where("id = ?", productID).
		Updates(map[string]any{
			"rating_count":   agg.Count,
			"rating_average": agg.Avg,
		}).Error
}
