package product

import (
	"errors"
	"strings"

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

func (s *Store) FindActiveByID(productID uint) (*models.Product, error) {
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

func (s *Store) FindActiveShop(shopID uint) (*models.Shop, error) {
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

func (s *Store) ListActiveByShop(shopID uint, offset, limit int) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("shop_id = ? AND status = ?", shopID, models.ProductActive)
	return s.page(query, offset, limit)
}

// SearchActive matches the keyword case-insensitively against name,
// description and short description of ACTIVE products.
func (s *Store) SearchActive(keyword string, offset, limit int) ([]models.Product, int64, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	query := s.db.Model(&models.Product{}).
		Where("status = ?", models.ProductActive).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(short_description) LIKE ?",
			pattern, pattern, pattern)
	return s.page(query, offset, limit)
}

func (s *Store) ListFeatured(offset, limit int) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Where("is_featured = ? AND status = ?", true, models.ProductActive)
	return s.page(query, offset, limit)
}

func (s *Store) page(query *gorm.DB, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error
	return products, total, err
}

// SlugExists checks globally, across all shops.
func (s *Store) SlugExists(slug string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// CreateWithImages persists the product and its image rows atomically; a
// failing image row rolls the product back.
func (s *Store) CreateWithImages(product *models.Product, images []models.ProductImage) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for i := range images {
			images[i].ProductID = product.ID
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) MainImage(productID uint) (*models.ProductImage, error) {
	var image models.ProductImage
	err := s.db.Where("product_id = ? AND is_main = ?", productID, true).First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *Store) Images(productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := s.db.Where("product_id = ?", productID).Order("sort_order ASC").Find(&images).Error
	return images, err
}

// OptionGroups loads the product's groups with their active options, both in
// sort order.
func (s *Store) OptionGroups(productID uint) ([]models.ProductOptionGroup, error) {
	var groups []models.ProductOptionGroup
	err := s.db.Where("product_id = ?", productID).
		Order("sort_order ASC").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order ASC")
		}).
		Find(&groups).Error
	return groups, err
}

func (s *Store) FindActiveCategoryInShop(categoryID, shopID uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	err := s.db.Where("id = ? AND shop_id = ? AND is_active = ?", categoryID, shopID, true).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) FindCategoryByID(categoryID uint) (*models.ProductCategory, error) {
	var category models.ProductCategory
	err := s.db.First(&category, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) ListCategoriesByShop(shopID uint) ([]models.ProductCategory, error) {
	var categories []models.ProductCategory
	err := s.db.Where("shop_id = ? AND is_active = ?", shopID, true).
		Order("sort_order ASC").Find(&categories).Error
	return categories, err
}

func (s *Store) CreateCategory(category *models.ProductCategory) error {
	return s.db.Create(category).Error
}

func (s *Store) SaveCategory(category *models.ProductCategory) error {
	return s.db.Save(category).Error
}

// WouldCreateCycle walks the parent chain from parentID; reaching
// categoryID means the proposed parent is a descendant (or the category
// itself). The depth guard caps pathological chains.
func (s *Store) WouldCreateCycle(categoryID, parentID uint) (bool, error) {
	current := parentID
	for depth := 0; depth < 100; depth++ {
		if current == categoryID {
			return true, nil
		}
		category, err := s.FindCategoryByID(current)
		if err != nil {
			if errors.Is(err, apperrors.ErrCategoryNotFound) {
				return false, nil
			}
			return false, err
		}
		if category.ParentID == nil {
			return false, nil
		}
		current = *category.ParentID
	}
	return true, nil
}
