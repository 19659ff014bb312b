package shop

import (
	"context"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/identity"
	"github.com/BerryWebFounder/berryweb-shop/models"
	"github.com/BerryWebFounder/berryweb-shop/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Service struct {
	store    *Store
	ids      identity.Resolver
	validate *validator.Validate
}

func NewService(store *Store, ids identity.Resolver) *Service {
	return &Service{
		store:    store,
		ids:      ids,
		validate: validator.New(),
	}
}

func (s *Service) GetAllShops(ctx context.Context, page, size int, token string) (*ShopListResponse, error) {
	page, size = pagination.Clamp(page, size)

	shops, total, err := s.store.ListActive(pagination.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, shops, total, page, size, token)
}

func (s *Service) SearchShops(ctx context.Context, keyword string, page, size int, token string) (*ShopListResponse, error) {
	page, size = pagination.Clamp(page, size)

	shops, total, err := s.store.SearchActiveByName(keyword, pagination.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return s.buildList(ctx, shops, total, page, size, token)
}

func (s *Service) GetShopByID(ctx context.Context, shopID uint, token string) (*ShopInfo, error) {
	shop, err := s.store.FindActiveByID(shopID)
	if err != nil {
		return nil, err
	}
	return s.buildInfo(ctx, shop, token)
}

func (s *Service) GetMyShops(ctx context.Context, token string, userID uint) ([]ShopInfo, error) {
	shops, err := s.store.ListActiveByOwner(userID)
	if err != nil {
		return nil, err
	}

	owner := s.ids.Resolve(ctx, userID, token)
	infos := make([]ShopInfo, 0, len(shops))
	for i := range shops {
		count, err := s.store.CountActiveProducts(shops[i].ID)
		if err != nil {
			return nil, err
		}
		infos = append(infos, toShopInfo(&shops[i], owner.Username, count))
	}
	return infos, nil
}

func (s *Service) CreateShop(ctx context.Context, req CreateShopRequest, token string, userID uint) (*ShopInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}
	if err := checkAmounts(req.MinOrderAmount, req.DeliveryFee, req.FreeDeliveryAmount); err != nil {
		return nil, err
	}

	// The degraded fallback identity is not proof the caller exists; shop
	// creation requires a real upstream lookup.
	owner, err := s.ids.Lookup(ctx, userID, token)
	if err != nil {
		return nil, apperrors.ErrUserNotFound
	}

	shop := &models.Shop{
		OwnerUserID:        userID,
		Name:               req.Name,
		Description:        req.Description,
		BusinessNumber:     req.BusinessNumber,
		Phone:              req.Phone,
		Email:              req.Email,
		Address:            req.Address,
		IsActive:           true,
		MinOrderAmount:     orZero(req.MinOrderAmount),
		DeliveryFee:        orZero(req.DeliveryFee),
		FreeDeliveryAmount: req.FreeDeliveryAmount,
		BusinessHours:      req.BusinessHours,
		CreatedBy:          userID,
	}
	if err := s.store.Create(shop); err != nil {
		return nil, err
	}

	info := toShopInfo(shop, owner.Username, 0)
	return &info, nil
}

func (s *Service) UpdateShop(ctx context.Context, shopID uint, req UpdateShopRequest, token string, userID uint) (*ShopInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}
	if err := checkAmounts(req.MinOrderAmount, req.DeliveryFee, req.FreeDeliveryAmount); err != nil {
		return nil, err
	}

	shop, err := s.store.FindActiveByID(shopID)
	if err != nil {
		return nil, err
	}

	caller := s.ids.Resolve(ctx, userID, token)
	if shop.OwnerUserID != userID && !caller.IsAdmin() {
		return nil, apperrors.ErrAccessDenied
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Description != nil {
		shop.Description = *req.Description
	}
	if req.BusinessNumber != nil {
		shop.BusinessNumber = *req.BusinessNumber
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.MinOrderAmount != nil {
		shop.MinOrderAmount = *req.MinOrderAmount
	}
	if req.DeliveryFee != nil {
		shop.DeliveryFee = *req.DeliveryFee
	}
	if req.FreeDeliveryAmount != nil {
		shop.FreeDeliveryAmount = req.FreeDeliveryAmount
	}
	if req.BusinessHours != nil {
		shop.BusinessHours = *req.BusinessHours
	}
	if req.IsActive != nil {
		shop.IsActive = *req.IsActive
	}
	shop.UpdatedBy = &userID

	if err := s.store.Save(shop); err != nil {
		return nil, err
	}
	return s.buildInfo(ctx, shop, token)
}

func (s *Service) buildList(ctx context.Context, shops []models.Shop, total int64, page, size int, token string) (*ShopListResponse, error) {
	infos := make([]ShopInfo, 0, len(shops))
	for i := range shops {
		info, err := s.buildInfo(ctx, &shops[i], token)
		if err != nil {
			return nil, err
		}
		infos = append(infos, *info)
	}
	return &ShopListResponse{Shops: infos, Total: total, Page: page, Size: size}, nil
}

func (s *Service) buildInfo(ctx context.Context, shop *models.Shop, token string) (*ShopInfo, error) {
	owner := s.ids.Resolve(ctx, shop.OwnerUserID, token)
	count, err := s.store.CountActiveProducts(shop.ID)
	if err != nil {
		return nil, err
	}
	info := toShopInfo(shop, owner.Username, count)
	return &info, nil
}

func toShopInfo(shop *models.Shop, ownerUsername string, productCount int64) ShopInfo {
	return ShopInfo{
		ID:                 shop.ID,
		OwnerUserID:        shop.OwnerUserID,
		OwnerUsername:      ownerUsername,
		Name:               shop.Name,
		Description:        shop.Description,
		BusinessNumber:     shop.BusinessNumber,
		Phone:              shop.Phone,
		Email:              shop.Email,
		Address:            shop.Address,
		IsActive:           shop.IsActive,
		MinOrderAmount:     shop.MinOrderAmount,
		DeliveryFee:        shop.DeliveryFee,
		FreeDeliveryAmount: shop.FreeDeliveryAmount,
		BusinessHours:      shop.BusinessHours,
		ProductCount:       productCount,
		CreatedAt:          shop.CreatedAt,
		UpdatedAt:          shop.UpdatedAt,
	}
}

func checkAmounts(amounts ...*decimal.Decimal) error {
	for _, a := range amounts {
		if a != nil && a.IsNegative() {
			return apperrors.Invalid("monetary amounts must not be negative")
		}
	}
	return nil
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
