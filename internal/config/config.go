package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort     string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Report archive. Disabled when MinioEndpoint is empty.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool

	// Catalog cache. The in-memory layer is used when RedisHost is empty.
	RedisHost     string
	RedisPort     string
	CacheTTL      time.Duration
	CacheMaxBytes int64

	SeedCatalog bool
	CORSOrigins string
	LogLevel    string
}

// LoadConfig loads configuration from a .env file, if present, and environment variables.
func LoadConfig() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	minioSSL, err := parseBool(getenv, "MINIO_SSL", false)
	if err != nil {
		return nil, err
	}
	seed, err := parseBool(getenv, "SEED_CATALOG", false)
	if err != nil {
		return nil, err
	}
	cacheTTL := 10 * time.Minute
	if ttlEnv := getenv("CACHE_TTL"); ttlEnv != "" {
		val, err := time.ParseDuration(ttlEnv)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("invalid CACHE_TTL value: %q", ttlEnv)
		}
		cacheTTL = val
	}
	cacheMax := int64(16 << 20)
	if maxEnv := getenv("CACHE_MAX_BYTES"); maxEnv != "" {
		val, err := strconv.ParseInt(maxEnv, 10, 64)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("invalid CACHE_MAX_BYTES value: %q", maxEnv)
		}
		cacheMax = val
	}

	cfg := &Config{
		AppPort:        getenv("APP_PORT"),
		DatabaseURL:    getenv("DATABASE_URL"),
		DBHost:         getenv("DB_HOST"),
		DBPort:         getenv("DB_PORT"),
		DBUser:         getenv("DB_USER"),
		DBPassword:     getenv("DB_PASSWORD"),
		DBName:         getenv("DB_NAME"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET"),
		MinioSSL:       minioSSL,
		RedisHost:      getenv("REDIS_HOST"),
		RedisPort:      getenv("REDIS_PORT"),
		CacheTTL:       cacheTTL,
		CacheMaxBytes:  cacheMax,
		SeedCatalog:    seed,
		CORSOrigins:    getenv("CORS_ALLOWED_ORIGINS"),
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL")),
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	if cfg.RedisHost != "" && cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}

	// Basic validation for required fields
	if cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "") {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	if cfg.MinioEnabled() && (cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "") {
		return nil, fmt.Errorf("minio configuration is incomplete")
	}
	return cfg, nil
}

// MinioEnabled reports whether rendered reports are archived in object storage.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}

// RedisEnabled reports whether the catalog cache lives in Redis.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// InitLogger builds the process logger. LOG_LEVEL=debug selects the development encoder.
func InitLogger(cfg *Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogLevel == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %v", key, err)
	}
	return val, nil
}
