package db

import (
	"log"
	"os"
	"path/filepath"

	"github.com/BerryWebFounder/berryweb-shop/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the sqlite database at dbPath, creating the file if needed,
// and migrates the schema.
func Connect(dbPath string) (*gorm.DB, error) {
	// Ensure the directory exists (create if it doesn't)
	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Println("Database file does not exist, creating:", dbPath)
		file, err := os.Create(dbPath)
		if err != nil {
			return nil, err
		}
		file.Close()
	}

	database, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	log.Println("Database connected successfully at", dbPath)

	if err := database.AutoMigrate(
		&models.Shop{}, &models.ProductCategory{}, &models.Product{},
		&models.ProductImage{}, &models.ProductOptionGroup{}, &models.ProductOption{},
		&models.Review{}, &models.ReviewImage{}, &models.ReviewHelpful{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
