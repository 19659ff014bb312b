package shop

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

func (s *Store) FindActiveByID(shopID uint) (*models.Shop, error) {
	var shop models.Shop
	err := s.db.Where("id = ? AND is_active = ?", shopID, true).First(&shop).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (s *Store) ListActive(offset, limit int) ([]models.Shop, int64, error) {
	query := s.db.Model(&models.Shop{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shops []models.Shop
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&shops).Error
	return shops, total, err
}

func (s *Store) ListActiveByOwner(ownerUserID uint) ([]models.Shop, error) {
	var shops []models.Shop
	err := s.db.Where("owner_user_id = ? AND is_active = ?", ownerUserID, true).
		Order("created_at DESC").Find(&shops).Error
	return shops, err
}

func (s *Store) SearchActiveByName(keyword string, offset, limit int) ([]models.Shop, int64, error) {
	pattern := "%" + keyword + "%"
	query := s.db.Model(&models.Shop{}).
		Where("is_active = ? AND name LIKE ?", true, pattern)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shops []models.Shop
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&shops).Error
	return shops, total, err
}

// CountActiveProducts counts the shop's ACTIVE products for listing views.
func (s *Store) CountActiveProducts(shopID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Product{}).
		Where("shop_id = ? AND status = ?", shopID, models.ProductActive).
		Count(&count).Error
	return count, err
}

func (s *Store) Create(shop *models.Shop) error {
	return s.db.Create(shop).Error
}

func (s *Store) Save(shop *models.Shop) error {
	return s.db.Save(shop).Error
}
