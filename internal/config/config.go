package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Shopify     ShopifyConfig
	Pricing     PricingConfig
	API         APIConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// PricingConfig tunes the pricing and variant engine.
type PricingConfig struct {
	// LargeChangePct flags preview rows whose price moves by strictly
	// more than this percentage of the current price.
	LargeChangePct float64
	// DefaultStockQuantity is the opening inventory for newly created variants.
	DefaultStockQuantity int
	// SKUTokenLength is how many leading characters of each ingredient
	// name go into a derived SKU token.
	SKUTokenLength int
}

type APIConfig struct {
	// AdminKeyHash is the bcrypt hash of the admin API key.
	AdminKeyHash string
}

func Load() (*Config, error) {
	// Load .env into the process environment if present. os.Getenv wins
	// over viper lookups in getEnvOrViper.
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PRICING_LARGE_CHANGE_PCT", "50")
	viper.SetDefault("DEFAULT_STOCK_QUANTITY", "25")
	viper.SetDefault("SKU_TOKEN_LENGTH", "3")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	largeChangePct, err := strconv.ParseFloat(getEnvOrViper("PRICING_LARGE_CHANGE_PCT", "50"), 64)
	if err != nil || largeChangePct < 0 {
		return nil, fmt.Errorf("PRICING_LARGE_CHANGE_PCT must be a non-negative number")
	}
	defaultStock, err := strconv.Atoi(getEnvOrViper("DEFAULT_STOCK_QUANTITY", "25"))
	if err != nil || defaultStock < 0 {
		return nil, fmt.Errorf("DEFAULT_STOCK_QUANTITY must be a non-negative integer")
	}
	skuTokenLen, err := strconv.Atoi(getEnvOrViper("SKU_TOKEN_LENGTH", "3"))
	if err != nil || skuTokenLen < 1 {
		return nil, fmt.Errorf("SKU_TOKEN_LENGTH must be a positive integer")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "candleadmin"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2026-01"),
		},
		Pricing: PricingConfig{
			LargeChangePct:       largeChangePct,
			DefaultStockQuantity: defaultStock,
			SKUTokenLength:       skuTokenLen,
		},
		API: APIConfig{
			AdminKeyHash: strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
