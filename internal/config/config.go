package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds session token and password hashing settings.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

// RateLimitConfig holds fixed-window limiter settings.
// AuthMax applies to the login/register routes, Max to everything else.
type RateLimitConfig struct {
	Max     int
	AuthMax int
	Window  time.Duration
}

// RedisConfig is optional; when URL is empty the rate limiter keeps its counters in memory.
type RedisConfig struct {
	URL string
}

// MarketplaceConfig holds quote lifecycle and pricing settings.
type MarketplaceConfig struct {
	QuoteWindow       time.Duration
	SweepInterval     time.Duration
	PricingRatesFile  string
	DocumentKeyHex    string
	WebhookTimeout    time.Duration
	MaxUploadBytes    int64
	ConfirmationTitle string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	Env         string
	CORSOrigin  string
	Database    DatabaseConfig
	MinIO       MinIOConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Redis       RedisConfig
	Marketplace MarketplaceConfig
	Logger      LoggerSettings
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:    getEnv("APP_HOST", "localhost:8080"),
		Port:       getEnv("PORT", "8080"),
		Env:        strings.ToLower(getEnv("APP_ENV", "development")),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			TokenTTL:   time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		RateLimit: RateLimitConfig{
			Max:     getEnvInt("RATE_LIMIT_MAX", 100),
			AuthMax: getEnvInt("RATE_LIMIT_AUTH_MAX", 10),
			Window:  time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SEC", 60)) * time.Second,
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Marketplace: MarketplaceConfig{
			QuoteWindow:       time.Duration(getEnvInt("QUOTE_WINDOW_HOURS", 24)) * time.Hour,
			SweepInterval:     time.Duration(getEnvInt("QUOTE_SWEEP_INTERVAL_SEC", 60)) * time.Second,
			PricingRatesFile:  getEnv("PRICING_RATES_FILE", ""),
			DocumentKeyHex:    getEnv("DOCUMENT_ENCRYPTION_KEY", ""),
			WebhookTimeout:    time.Duration(getEnvInt("WEBHOOK_TIMEOUT_SEC", 10)) * time.Second,
			MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 10)) << 20,
			ConfirmationTitle: getEnv("CONFIRMATION_TITLE", "BidChemz Logistics"),
		},
		Logger: LoggerSettings{
			LogLevel:   getEnv("LOG_LEVEL", LogLevelInfo),
			LogType:    getEnv("LOG_TYPE", LogTypeConsole),
			FilePath:   getEnv("LOG_FILE_PATH", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE_DAYS", 28),
		},
	}
}

// IsProduction reports whether the service runs with APP_ENV=production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
