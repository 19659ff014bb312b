package review

import (
	"context"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/files"
	"github.com/BerryWebFounder/berryweb-shop/identity"
	"github.com/BerryWebFounder/berryweb-shop/models"
	"github.com/BerryWebFounder/berryweb-shop/notify"
	"github.com/BerryWebFounder/berryweb-shop/pagination"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	store     *Store
	ids       identity.Resolver
	files     *files.Service
	hub       *notify.Hub
	maxImages int
	validate  *validator.Validate
}

func NewService(store *Store, ids identity.Resolver, fileSvc *files.Service, hub *notify.Hub, maxImages int) *Service {
	return &Service{
		store:     store,
		ids:       ids,
		files:     fileSvc,
		hub:       hub,
		maxImages: maxImages,
		validate:  validator.New(),
	}
}

func (s *Service) GetReviewsByProduct(ctx context.Context, productID uint, page, size int, token string, callerID uint) (*ReviewListResponse, error) {
	product, err := s.store.FindActiveProduct(productID)
	if err != nil {
		return nil, err
	}

	page, size = pagination.Clamp(page, size)
	reviews, total, err := s.store.ListActiveByProduct(productID, pagination.Offset(page, size), size)
	if err != nil {
		return nil, err
	}

	infos := make([]ReviewInfo, 0, len(reviews))
	for i := range reviews {
		info, err := s.buildInfo(ctx, &reviews[i], product, token, callerID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return &ReviewListResponse{Reviews: infos, Total: total, Page: page, Size: size}, nil
}

func (s *Service) CreateReview(ctx context.Context, req CreateReviewRequest, uploads []files.Upload, token string, userID uint) (*ReviewInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	product, err := s.store.FindActiveProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsActiveByProductAndUser(product.ID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateReview
	}

	if err := s.files.CheckCount(len(uploads), s.maxImages); err != nil {
		return nil, err
	}
	for _, u := range uploads {
		if err := s.files.Check(u); err != nil {
			return nil, err
		}
	}

	review := &models.Review{
		ProductID:          product.ID,
		UserID:             userID,
		Rating:             req.Rating,
		Title:              req.Title,
		Content:            req.Content,
		IsVerifiedPurchase: req.IsVerifiedPurchase,
		IsActive:           true,
		CreatedBy:          userID,
	}

	images := make([]models.ReviewImage, 0, len(uploads))
	for i, u := range uploads {
		storedName, path, err := s.files.Save(u)
		if err != nil {
			return nil, err
		}
		images = append(images, models.ReviewImage{
			OriginalFilename: u.Filename,
			StoredFilename:   storedName,
			FilePath:         path,
			FileSize:         u.Size,
			SortOrder:        i,
		})
	}

	if err := s.store.CreateWithImages(review, images); err != nil {
		return nil, err
	}

	s.hub.Broadcast("review.created", map[string]any{
		"id":         review.ID,
		"product_id": review.ProductID,
		"rating":     review.Rating,
	})

	return s.buildInfo(ctx, review, product, token, userID)
}

// UpdateReview is author-only; the rating change triggers recomputation of
// the product aggregate.
func (s *Service) UpdateReview(ctx context.Context, reviewID uint, req UpdateReviewRequest, token string, userID uint) (*ReviewInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	review, err := s.store.FindActiveByID(reviewID)
	if err != nil {
		return nil, err
	}
	if review.UserID != userID {
		return nil, apperrors.ErrAccessDenied
	}

	review.Rating = req.Rating
	review.Title = req.Title
	review.Content = req.Content
	review.UpdatedBy = &userID

	if err := s.store.Save(review); err != nil {
		return nil, err
	}

	product, err := s.store.FindProduct(review.ProductID)
	if err != nil {
		return nil, err
	}
	return s.buildInfo(ctx, review, product, token, userID)
}

// DeleteReview soft-deletes; author or ADMIN only.
func (s *Service) DeleteReview(ctx context.Context, reviewID uint, token string, userID uint) error {
	review, err := s.store.FindActiveByID(reviewID)
	if err != nil {
		return err
	}

	if review.UserID != userID {
		caller := s.ids.Resolve(ctx, userID, token)
		if !caller.IsAdmin() {
			return apperrors.ErrAccessDenied
		}
	}

	review.IsActive = false
	review.UpdatedBy = &userID
	return s.store.Save(review)
}

func (s *Service) ToggleHelpful(reviewID, userID uint) (*HelpfulResult, error) {
	voted, count, err := s.store.ToggleHelpful(reviewID, userID)
	if err != nil {
		return nil, err
	}
	return &HelpfulResult{ReviewID: reviewID, Voted: voted, HelpfulCount: count}, nil
}

func (s *Service) buildInfo(ctx context.Context, review *models.Review, product *models.Product, token string, callerID uint) (*ReviewInfo, error) {
	author := s.ids.Resolve(ctx, review.UserID, token)

	isHelpful := false
	if callerID != 0 {
		var err error
		isHelpful, err = s.store.HasVoted(review.ID, callerID)
		if err != nil {
			return nil, err
		}
	}

	images, err := s.store.Images(review.ID)
	if err != nil {
		return nil, err
	}
	imageInfos := make([]ReviewImageInfo, 0, len(images))
	for i := range images {
		img := &images[i]
		imageInfos = append(imageInfos, ReviewImageInfo{
			ID:               img.ID,
			OriginalFilename: img.OriginalFilename,
			StoredFilename:   img.StoredFilename,
			FileSize:         img.FileSize,
			SortOrder:        img.SortOrder,
			CreatedAt:        img.CreatedAt,
		})
	}

	return &ReviewInfo{
		ID:                 review.ID,
		ProductID:          review.ProductID,
		ProductName:        product.Name,
		UserID:             review.UserID,
		Username:           author.Username,
		Rating:             review.Rating,
		Title:              review.Title,
		Content:            review.Content,
		IsVerifiedPurchase: review.IsVerifiedPurchase,
		IsActive:           review.IsActive,
		HelpfulCount:       review.HelpfulCount,
		IsHelpful:          isHelpful,
		Images:             imageInfos,
		CreatedAt:          review.CreatedAt,
		UpdatedAt:          review.UpdatedAt,
	}, nil
}
