package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Upload      UploadConfig
	UserService UserServiceConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Path string
}

// UploadConfig bounds accepted file uploads
type UploadConfig struct {
	Path              string
	MaxSize           int64
	MaxProductImages  int
	MaxReviewImages   int
	AllowedExtensions []string
}

// UserServiceConfig points at the external user service
type UserServiceConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "3000"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "shop.db"),
		},
		Upload: UploadConfig{
			Path:              getEnv("UPLOAD_PATH", "uploads"),
			MaxSize:           getEnvInt64("UPLOAD_MAX_SIZE", 10*1024*1024),
			MaxProductImages:  getEnvInt("UPLOAD_MAX_PRODUCT_IMAGES", 10),
			MaxReviewImages:   getEnvInt("UPLOAD_MAX_REVIEW_IMAGES", 5),
			AllowedExtensions: strings.Split(getEnv("UPLOAD_ALLOWED_EXTENSIONS", "jpg,jpeg,png,gif,webp"), ","),
		},
		UserService: UserServiceConfig{
			BaseURL:  getEnv("USER_SERVICE_URL", "http://localhost:8081"),
			Timeout:  getEnvDuration("USER_SERVICE_TIMEOUT", 3*time.Second),
			CacheTTL: getEnvDuration("USER_CACHE_TTL", time.Hour),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
