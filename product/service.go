package product

import (
	"context"
	"errors"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/files"
	"github.com/BerryWebFounder/berryweb-shop/identity"
	"github.com/BerryWebFounder/berryweb-shop/models"
	"github.com/BerryWebFounder/berryweb-shop/notify"
	"github.com/BerryWebFounder/berryweb-shop/pagination"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
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

func (s *Service) GetProductsByShop(shopID uint, page, size int) (*ProductListResponse, error) {
	if _, err := s.store.FindActiveShop(shopID); err != nil {
		return nil, err
	}

	page, size = pagination.Clamp(page, size)
	products, total, err := s.store.ListActiveByShop(shopID, pagination.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return s.buildList(products, total, page, size)
}

func (s *Service) SearchProducts(keyword string, page, size int) (*ProductListResponse, error) {
	page, size = pagination.Clamp(page, size)
	products, total, err := s.store.SearchActive(keyword, pagination.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return s.buildList(products, total, page, size)
}

func (s *Service) GetFeaturedProducts(page, size int) (*ProductListResponse, error) {
	page, size = pagination.Clamp(page, size)
	products, total, err := s.store.ListFeatured(pagination.Offset(page, size), size)
	if err != nil {
		return nil, err
	}
	return s.buildList(products, total, page, size)
}

func (s *Service) GetProductByID(productID uint) (*ProductInfo, error) {
	product, err := s.store.FindActiveByID(productID)
	if err != nil {
		return nil, err
	}
	return s.buildInfo(product)
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest, uploads []files.Upload, token string, userID uint) (*ProductInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}
	if req.Price.IsNegative() {
		return nil, apperrors.Invalid("price must not be negative")
	}
	if req.SalePrice != nil && req.SalePrice.IsNegative() {
		return nil, apperrors.Invalid("sale price must not be negative")
	}

	shop, err := s.store.FindActiveShop(req.ShopID)
	if err != nil {
		return nil, err
	}

	caller := s.ids.Resolve(ctx, userID, token)
	if shop.OwnerUserID != userID && !caller.IsAdmin() {
		return nil, apperrors.ErrAccessDenied
	}

	if req.CategoryID != nil {
		if _, err := s.store.FindActiveCategoryInShop(*req.CategoryID, shop.ID); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil {
		exists, err := s.store.SlugExists(*req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrDuplicateSlug
		}
	}

	if err := s.files.CheckCount(len(uploads), s.maxImages); err != nil {
		return nil, err
	}
	for _, u := range uploads {
		if err := s.files.Check(u); err != nil {
			return nil, err
		}
	}

	trackStock := true
	if req.TrackStock != nil {
		trackStock = *req.TrackStock
	}

	product := &models.Product{
		ShopID:           shop.ID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		SalePrice:        req.SalePrice,
		CostPrice:        req.CostPrice,
		StockQuantity:    req.StockQuantity,
		MinStockQuantity: req.MinStockQuantity,
		MaxOrderQuantity: req.MaxOrderQuantity,
		TrackStock:       trackStock,
		Status:           models.ProductActive,
		IsFeatured:       req.IsFeatured,
		Slug:             req.Slug,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
		Weight:           req.Weight,
		Dimensions:       req.Dimensions,
		CreatedBy:        userID,
	}

	// Files go to disk before the transaction; the rows commit or roll back
	// as one unit with the product.
	images := make([]models.ProductImage, 0, len(uploads))
	for i, u := range uploads {
		storedName, path, err := s.files.Save(u)
		if err != nil {
			return nil, err
		}
		images = append(images, models.ProductImage{
			OriginalFilename: u.Filename,
			StoredFilename:   storedName,
			FilePath:         path,
			FileSize:         u.Size,
			IsMain:           i == 0, // first uploaded image is main
			SortOrder:        i,
			CreatedBy:        userID,
		})
	}

	if err := s.store.CreateWithImages(product, images); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateSlug
		}
		return nil, err
	}

	s.hub.Broadcast("product.created", map[string]any{
		"id":      product.ID,
		"shop_id": product.ShopID,
		"name":    product.Name,
	})

	return s.buildInfo(product)
}

func (s *Service) GetCategoriesByShop(shopID uint) ([]CategoryInfo, error) {
	if _, err := s.store.FindActiveShop(shopID); err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategoriesByShop(shopID)
	if err != nil {
		return nil, err
	}
	return buildCategoryTree(categories), nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest, token string, userID uint) (*CategoryInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	shop, err := s.store.FindActiveShop(req.ShopID)
	if err != nil {
		return nil, err
	}

	caller := s.ids.Resolve(ctx, userID, token)
	if shop.OwnerUserID != userID && !caller.IsAdmin() {
		return nil, apperrors.ErrAccessDenied
	}

	if req.ParentID != nil {
		if _, err := s.store.FindActiveCategoryInShop(*req.ParentID, shop.ID); err != nil {
			return nil, err
		}
	}

	category := &models.ProductCategory{
		ShopID:      shop.ID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := s.store.CreateCategory(category); err != nil {
		return nil, err
	}

	info := toCategoryInfo(category)
	return &info, nil
}

func (s *Service) UpdateCategory(ctx context.Context, categoryID uint, req UpdateCategoryRequest, token string, userID uint) (*CategoryInfo, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.FromValidation(err)
	}

	category, err := s.store.FindCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	shop, err := s.store.FindActiveShop(category.ShopID)
	if err != nil {
		return nil, err
	}

	caller := s.ids.Resolve(ctx, userID, token)
	if shop.OwnerUserID != userID && !caller.IsAdmin() {
		return nil, apperrors.ErrAccessDenied
	}

	if req.ParentID != nil {
		if _, err := s.store.FindActiveCategoryInShop(*req.ParentID, category.ShopID); err != nil {
			return nil, err
		}
		cycle, err := s.store.WouldCreateCycle(category.ID, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if cycle {
			return nil, apperrors.ErrCategoryCycle
		}
		category.ParentID = req.ParentID
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.store.SaveCategory(category); err != nil {
		return nil, err
	}

	info := toCategoryInfo(category)
	return &info, nil
}

func (s *Service) buildList(products []models.Product, total int64, page, size int) (*ProductListResponse, error) {
	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summary, err := s.buildSummary(&products[i])
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return &ProductListResponse{Products: summaries, Total: total, Page: page, Size: size}, nil
}

func (s *Service) buildSummary(product *models.Product) (*ProductSummary, error) {
	mainImage, err := s.store.MainImage(product.ID)
	if err != nil {
		return nil, err
	}

	var imageInfo *ProductImageInfo
	if mainImage != nil {
		info := toImageInfo(mainImage)
		imageInfo = &info
	}

	return &ProductSummary{
		ID:               product.ID,
		Name:             product.Name,
		ShortDescription: product.ShortDescription,
		Price:            product.Price,
		SalePrice:        product.SalePrice,
		IsFeatured:       product.IsFeatured,
		RatingAverage:    product.RatingAverage,
		RatingCount:      product.RatingCount,
		MainImage:        imageInfo,
		CreatedAt:        product.CreatedAt,
	}, nil
}

func (s *Service) buildInfo(product *models.Product) (*ProductInfo, error) {
	shop, err := s.store.FindActiveShop(product.ShopID)
	if err != nil {
		return nil, err
	}

	var categoryName *string
	if product.CategoryID != nil {
		category, err := s.store.FindCategoryByID(*product.CategoryID)
		if err == nil {
			categoryName = &category.Name
		} else if !errors.Is(err, apperrors.ErrCategoryNotFound) {
			return nil, err
		}
	}

	images, err := s.store.Images(product.ID)
	if err != nil {
		return nil, err
	}
	imageInfos := make([]ProductImageInfo, 0, len(images))
	for i := range images {
		imageInfos = append(imageInfos, toImageInfo(&images[i]))
	}

	groups, err := s.store.OptionGroups(product.ID)
	if err != nil {
		return nil, err
	}
	groupInfos := make([]ProductOptionGroupInfo, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		options := make([]ProductOptionInfo, 0, len(group.Options))
		for j := range group.Options {
			option := &group.Options[j]
			options = append(options, ProductOptionInfo{
				ID:              option.ID,
				Name:            option.Name,
				AdditionalPrice: option.AdditionalPrice,
				StockQuantity:   option.StockQuantity,
				IsActive:        option.IsActive,
				SortOrder:       option.SortOrder,
			})
		}
		groupInfos = append(groupInfos, ProductOptionGroupInfo{
			ID:         group.ID,
			Name:       group.Name,
			Type:       group.Type,
			IsRequired: group.IsRequired,
			SortOrder:  group.SortOrder,
			Options:    options,
		})
	}

	return &ProductInfo{
		ID:               product.ID,
		ShopID:           product.ShopID,
		ShopName:         shop.Name,
		CategoryID:       product.CategoryID,
		CategoryName:     categoryName,
		Name:             product.Name,
		Description:      product.Description,
		ShortDescription: product.ShortDescription,
		Price:            product.Price,
		SalePrice:        product.SalePrice,
		StockQuantity:    product.StockQuantity,
		MinStockQuantity: product.MinStockQuantity,
		MaxOrderQuantity: product.MaxOrderQuantity,
		TrackStock:       product.TrackStock,
		Status:           product.Status,
		IsFeatured:       product.IsFeatured,
		Slug:             product.Slug,
		MetaTitle:        product.MetaTitle,
		MetaDescription:  product.MetaDescription,
		Weight:           product.Weight,
		Dimensions:       product.Dimensions,
		RatingAverage:    product.RatingAverage,
		RatingCount:      product.RatingCount,
		Images:           imageInfos,
		OptionGroups:     groupInfos,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}, nil
}

func toImageInfo(image *models.ProductImage) ProductImageInfo {
	return ProductImageInfo{
		ID:               image.ID,
		OriginalFilename: image.OriginalFilename,
		StoredFilename:   image.StoredFilename,
		FileSize:         image.FileSize,
		IsMain:           image.IsMain,
		AltText:          image.AltText,
		SortOrder:        image.SortOrder,
		CreatedAt:        image.CreatedAt,
	}
}

func toCategoryInfo(category *models.ProductCategory) CategoryInfo {
	return CategoryInfo{
		ID:          category.ID,
		ShopID:      category.ShopID,
		ParentID:    category.ParentID,
		Name:        category.Name,
		Description: category.Description,
		SortOrder:   category.SortOrder,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
	}
}

// buildCategoryTree nests the flat list by parent id; categories whose
// parent is missing from the list surface as roots.
func buildCategoryTree(categories []models.ProductCategory) []CategoryInfo {
	present := make(map[uint]bool, len(categories))
	for i := range categories {
		present[categories[i].ID] = true
	}

	childIdx := make(map[uint][]int)
	rootIdx := make([]int, 0)
	for i := range categories {
		parent := categories[i].ParentID
		if parent != nil && present[*parent] {
			childIdx[*parent] = append(childIdx[*parent], i)
		} else {
			rootIdx = append(rootIdx, i)
		}
	}

	var build func(i int) CategoryInfo
	build = func(i int) CategoryInfo {
		info := toCategoryInfo(&categories[i])
		for _, c := range childIdx[categories[i].ID] {
			info.Children = append(info.Children, build(c))
		}
		return info
	}

	roots := make([]CategoryInfo, 0, len(rootIdx))
	for _, i := range rootIdx {
		roots = append(roots, build(i))
	}
	return roots
}
