package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	apperrors "github.com/patramstore/storefront-api/pkg/errors"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	Razorpay    RazorpayConfig
	WhatsApp    WhatsAppConfig
	Admin       AdminConfig
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

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
}

type WhatsAppConfig struct {
	BusinessPhone string
	SupportEmail  string
	StoreName     string
}

type AdminConfig struct {
	APIKey string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "require")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "patramstore"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "require"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Razorpay: RazorpayConfig{
			KeyID:     getEnvOrViper("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnvOrViper("RAZORPAY_KEY_SECRET", ""),
		},
		WhatsApp: WhatsAppConfig{
			BusinessPhone: getEnvOrViper("WHATSAPP_BUSINESS_PHONE", "+918107514654"),
			SupportEmail:  getEnvOrViper("SUPPORT_EMAIL", "support@patramstore.com"),
			StoreName:     getEnvOrViper("STORE_NAME", "Patram Store"),
		},
		Admin: AdminConfig{
			APIKey: getEnvOrViper("ADMIN_API_KEY", ""),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Missing payment credentials fail fast at startup rather than
	// degrading into a non-functional stub client.
	if cfg.Razorpay.KeyID == "" {
		return nil, &apperrors.ErrConfiguration{Key: "RAZORPAY_KEY_ID"}
	}
	if cfg.Razorpay.KeySecret == "" {
		return nil, &apperrors.ErrConfiguration{Key: "RAZORPAY_KEY_SECRET"}
	}
	if cfg.Admin.APIKey == "" {
		return nil, &apperrors.ErrConfiguration{Key: "ADMIN_API_KEY"}
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
