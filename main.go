package main

import (
	"log"
	"os"

	"github.com/BerryWebFounder/berryweb-shop/config"
	"github.com/BerryWebFounder/berryweb-shop/db"
	"github.com/BerryWebFounder/berryweb-shop/files"
	"github.com/BerryWebFounder/berryweb-shop/identity"
	"github.com/BerryWebFounder/berryweb-shop/notify"
	"github.com/BerryWebFounder/berryweb-shop/product"
	"github.com/BerryWebFounder/berryweb-shop/review"
	"github.com/BerryWebFounder/berryweb-shop/routes"
	"github.com/BerryWebFounder/berryweb-shop/shop"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	database, err := db.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat(cfg.Upload.Path); os.IsNotExist(err) {
		os.Mkdir(cfg.Upload.Path, 0755)
	}

	ids := identity.NewGateway(
		identity.NewClient(cfg.UserService.BaseURL, cfg.UserService.Timeout),
		identity.NewMemoryCache(cfg.UserService.CacheTTL),
	)
	fileSvc := files.NewService(cfg.Upload.Path, cfg.Upload.MaxSize, cfg.Upload.AllowedExtensions)
	hub := notify.NewHub()

	handler := &routes.Handler{
		Shops:    shop.NewService(shop.NewStore(database), ids),
		Products: product.NewService(product.NewStore(database), ids, fileSvc, hub, cfg.Upload.MaxProductImages),
		Reviews:  review.NewService(review.NewStore(database), ids, fileSvc, hub, cfg.Upload.MaxReviewImages),
		Hub:      hub,
	}

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(recover.New())

	// Serve static files
	app.Static("/uploads", cfg.Upload.Path)

	// Setup routes
	routes.Setup(app, handler)

	// Start server
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
