package routes

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"strconv"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"
	"github.com/BerryWebFounder/berryweb-shop/files"
	"github.com/BerryWebFounder/berryweb-shop/notify"
	"github.com/BerryWebFounder/berryweb-shop/product"
	"github.com/BerryWebFounder/berryweb-shop/review"
	"github.com/BerryWebFounder/berryweb-shop/shop"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// Handler bundles the services the routes dispatch to.
type Handler struct {
	Shops    *shop.Service
	Products *product.Service
	Reviews  *review.Service
	Hub      *notify.Hub
}

func Setup(app *fiber.App, h *Handler) {
	// Realtime catalog events
	app.Get("/ws", adaptor.HTTPHandlerFunc(h.Hub.Handler()))

	api := app.Group("/api")

	shops := api.Group("/shops")
	shops.Get("/", OptionalAuth(), h.getAllShops)
	shops.Get("/search", OptionalAuth(), h.searchShops)
	shops.Get("/my", RequireAuth(), h.getMyShops)
	shops.Post("/", RequireAuth(), h.createShop)
	shops.Get("/:shopId", OptionalAuth(), h.getShop)
	shops.Put("/:shopId", RequireAuth(), h.updateShop)
	shops.Get("/:shopId/products", OptionalAuth(), h.getShopProducts)
	shops.Get("/:shopId/categories", OptionalAuth(), h.getShopCategories)

	categories := api.Group("/categories")
	categories.Post("/", RequireAuth(), h.createCategory)
	categories.Put("/:id", RequireAuth(), h.updateCategory)

	products := api.Group("/products")
	products.Get("/search", OptionalAuth(), h.searchProducts)
	products.Get("/featured", OptionalAuth(), h.getFeaturedProducts)
	products.Post("/", RequireAuth(), h.createProduct)
	products.Get("/:id", OptionalAuth(), h.getProduct)
	products.Get("/:productId/reviews", OptionalAuth(), h.getProductReviews)
	products.Post("/:productId/reviews", RequireAuth(), h.createReview)

	reviews := api.Group("/reviews")
	reviews.Put("/:reviewId", RequireAuth(), h.updateReview)
	reviews.Delete("/:reviewId", RequireAuth(), h.deleteReview)
	reviews.Post("/:reviewId/helpful", RequireAuth(), h.toggleHelpful)
}

// Shop handlers

func (h *Handler) getAllShops(c *fiber.Ctx) error {
	page, size := pageParams(c)
	result, err := h.Shops.GetAllShops(c.Context(), page, size, callerToken(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) searchShops(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return fail(c, apperrors.Invalid("query parameter 'keyword' is required"))
	}
	page, size := pageParams(c)
	result, err := h.Shops.SearchShops(c.Context(), keyword, page, size, callerToken(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) getMyShops(c *fiber.Ctx) error {
	result, err := h.Shops.GetMyShops(c.Context(), callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) getShop(c *fiber.Ctx) error {
	shopID, err := idParam(c, "shopId")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.Shops.GetShopByID(c.Context(), shopID, callerToken(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) createShop(c *fiber.Ctx) error {
	var req shop.CreateShopRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	result, err := h.Shops.CreateShop(c.Context(), req, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, result)
}

func (h *Handler) updateShop(c *fiber.Ctx) error {
	shopID, err := idParam(c, "shopId")
	if err != nil {
		return fail(c, err)
	}
	var req shop.UpdateShopRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	result, err := h.Shops.UpdateShop(c.Context(), shopID, req, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

// Product handlers

func (h *Handler) getShopProducts(c *fiber.Ctx) error {
	shopID, err := idParam(c, "shopId")
	if err != nil {
		return fail(c, err)
	}
	page, size := pageParams(c)
	result, err := h.Products.GetProductsByShop(shopID, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return fail(c, apperrors.Invalid("query parameter 'keyword' is required"))
	}
	page, size := pageParams(c)
	result, err := h.Products.SearchProducts(keyword, page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) getFeaturedProducts(c *fiber.Ctx) error {
	page, size := pageParams(c)
	result, err := h.Products.GetFeaturedProducts(page, size)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	productID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.Products.GetProductByID(productID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	var req product.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	uploads, err := formUploads(c, "images")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.Products.CreateProduct(c.Context(), req, uploads, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, result)
}

// Category handlers

func (h *Handler) getShopCategories(c *fiber.Ctx) error {
	shopID, err := idParam(c, "shopId")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.Products.GetCategoriesByShop(shopID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) createCategory(c *fiber.Ctx) error {
	var req product.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	result, err := h.Products.CreateCategory(c.Context(), req, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, result)
}

func (h *Handler) updateCategory(c *fiber.Ctx) error {
	categoryID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req product.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	result, err := h.Products.UpdateCategory(c.Context(), categoryID, req, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

// Review handlers

func (h *Handler) getProductReviews(c *fiber.Ctx) error {
	productID, err := idParam(c, "productId")
	if err != nil {
		return fail(c, err)
	}
	page, size := pageParams(c)
	result, err := h.Reviews.GetReviewsByProduct(c.Context(), productID, page, size, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) createReview(c *fiber.Ctx) error {
	productID, err := idParam(c, "productId")
	if err != nil {
		return fail(c, err)
	}
	var req review.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	req.ProductID = productID
	uploads, err := formUploads(c, "images")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.Reviews.CreateReview(c.Context(), req, uploads, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return created(c, result)
}

func (h *Handler) updateReview(c *fiber.Ctx) error {
	reviewID, err := idParam(c, "reviewId")
	if err != nil {
		return fail(c, err)
	}
	var req review.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperrors.Invalid("failed to parse request body"))
	}
	result, err := h.Reviews.UpdateReview(c.Context(), reviewID, req, callerToken(c), callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

func (h *Handler) deleteReview(c *fiber.Ctx) error {
	reviewID, err := idParam(c, "reviewId")
	if err != nil {
		return fail(c, err)
	}
	if err := h.Reviews.DeleteReview(c.Context(), reviewID, callerToken(c), callerID(c)); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (h *Handler) toggleHelpful(c *fiber.Ctx) error {
	reviewID, err := idParam(c, "reviewId")
	if err != nil {
		return fail(c, err)
	}
	result, err := h.Reviews.ToggleHelpful(reviewID, callerID(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, result)
}

// Helpers

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

// fail maps domain errors to the response envelope; anything unclassified
// becomes C001 without leaking internals.
func fail(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{
			"success":   false,
			"errorCode": appErr.Code,
			"message":   appErr.Message,
		})
	}
	log.Printf("unhandled error: %v", err)
	return c.Status(apperrors.ErrInternal.Status).JSON(fiber.Map{
		"success":   false,
		"errorCode": apperrors.ErrInternal.Code,
		"message":   apperrors.ErrInternal.Message,
	})
}

func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, apperrors.Invalid("invalid " + name)
	}
	return uint(id), nil
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", "20"))
	return page, size
}

// formUploads reads the named multipart files into memory; a plain JSON
// request simply has none.
func formUploads(c *fiber.Ctx, field string) ([]files.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	headers := form.File[field]
	uploads := make([]files.Upload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			return nil, apperrors.ErrFileSaveFailed
		}
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func readUpload(header *multipart.FileHeader) (files.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return files.Upload{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return files.Upload{}, err
	}
	return files.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  content,
	}, nil
}
