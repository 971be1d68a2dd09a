package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Payment     PaymentConfig
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

// PaymentConfig holds the payment processor credentials. SecretKey may be
// empty or a placeholder: the server then runs against the in-process mock
// processor instead of refusing to start.
type PaymentConfig struct {
	SecretKey      string
	PublishableKey string
	Currency       string
}

// minSecretKeyLen is the shortest key we treat as a genuine processor
// credential; anything shorter selects the mock processor.
const minSecretKeyLen = 20

// UseMock reports whether the secret key is absent, malformed or too short
// to be a genuine processor credential.
func (p PaymentConfig) UseMock() bool {
	key := strings.TrimSpace(p.SecretKey)
	if key == "" || len(key) < minSecretKeyLen {
		return true
	}
	return !strings.HasPrefix(key, "sk_")
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
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("PAYMENT_CURRENCY", "eur")
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
			DBName:   getEnvOrViper("DB_NAME", "storefront"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Payment: PaymentConfig{
			SecretKey:      getEnvOrViper("PAYMENT_SECRET_KEY", ""),
			PublishableKey: getEnvOrViper("PAYMENT_PUBLISHABLE_KEY", ""),
			Currency:       getEnvOrViper("PAYMENT_CURRENCY", "eur"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
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
