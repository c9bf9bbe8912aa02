package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	VTpass   VTpassConfig
	Paystack PaystackConfig
	Identity IdentityConfig
}

type ServerConfig struct {
	Port string
	Env  string
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

// VTpassConfig holds the billing provider credentials. DefaultPhone is the
// contact number attached to fulfillment calls whose request carries no phone
// of its own (cable, betting, education).
type VTpassConfig struct {
	BaseURL      string
	APIKey       string
	SecretKey    string
	DefaultPhone string
}

type PaystackConfig struct {
	BaseURL   string
	SecretKey string
}

// IdentityConfig points at the external identity service that maps bearer
// credentials to users. Resolved identities are cached in redis for CacheTTL.
type IdentityConfig struct {
	BaseURL  string
	CacheTTL time.Duration
}

func Load(logger *zap.Logger) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8030"),
			Env:  getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "extremedata"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		VTpass: VTpassConfig{
			BaseURL:      getEnv("VTPASS_BASE_URL", "https://sandbox.vtpass.com"),
			APIKey:       getEnv("VTPASS_API_KEY", ""),
			SecretKey:    getEnv("VTPASS_SECRET_KEY", ""),
			DefaultPhone: getEnv("DEFAULT_PHONE_NUMBER", "08000000000"),
		},
		Paystack: PaystackConfig{
			BaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
			SecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		},
		Identity: IdentityConfig{
			BaseURL:  getEnv("IDENTITY_BASE_URL", "http://localhost:9999"),
			CacheTTL: getEnvDuration("IDENTITY_CACHE_TTL", 5*time.Minute),
		},
	}

	if cfg.Server.Env != "development" {
		if cfg.VTpass.APIKey == "" || cfg.VTpass.SecretKey == "" {
			return nil, fmt.Errorf("VTPASS_API_KEY and VTPASS_SECRET_KEY are required in %s", cfg.Server.Env)
		}
		if cfg.Paystack.SecretKey == "" {
			return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is required in %s", cfg.Server.Env)
		}
	}

	logger.Info("configuration loaded",
		zap.String("environment", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("vtpass_base_url", cfg.VTpass.BaseURL),
		zap.String("paystack_base_url", cfg.Paystack.BaseURL))

	return cfg, nil
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
