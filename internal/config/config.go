package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Identity oracle modes.
const (
	IdentityModeHTTP   = "http"
	IdentityModeStatic = "static"
)

// Config captures all runtime configuration derived from environment variables.
type Config struct {
	Port                string
	AdminToken          string
	DBURL               string
	IdentityMode        string
	IdentityURL         string
	IdentityTimeoutSecs int
	IdentityStaticUsers []int64
	CloudinaryURL       string
	CloudinaryFolder    string
	RankingConfidence   float64
	RankingWorkers      int
	MaxImagesPerHostel  int
	LogLevel            string
	LogFormat           string
	ReadTimeoutSecs     int
	WriteTimeoutSecs    int
	IdleTimeoutSecs     int
	DBMaxConns          int
	DBMinConns          int
	DBMaxIdleSecs       int
	DBMaxLifeSecs       int
	DBConnTimeoutSecs   int
	DBStatementCache    int
	DBMigrationsDir     string
}

// Load reads configuration from environment variables, applying defaults and validation.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		AdminToken:          os.Getenv("ADMIN_TOKEN"),
		DBURL:               os.Getenv("DB_URL"),
		IdentityMode:        strings.ToLower(getEnv("IDENTITY_MODE", IdentityModeHTTP)),
		IdentityURL:         os.Getenv("IDENTITY_URL"),
		IdentityTimeoutSecs: getEnvInt("IDENTITY_TIMEOUT_SECS", 5),
		CloudinaryURL:       os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "hostel-service/hostels"),
		RankingConfidence:   getEnvFloat("RANKING_CONFIDENCE", 5),
		RankingWorkers:      getEnvInt("RANKING_WORKERS", 8),
		MaxImagesPerHostel:  getEnvInt("MAX_IMAGES_PER_HOSTEL", 5),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "console"),
		ReadTimeoutSecs:     getEnvInt("SERVER_READ_TIMEOUT", 15),
		WriteTimeoutSecs:    getEnvInt("SERVER_WRITE_TIMEOUT", 15),
		IdleTimeoutSecs:     getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		DBMaxConns:          getEnvInt("DB_MAX_CONNS", 20),
		DBMinConns:          getEnvInt("DB_MIN_CONNS", 2),
		DBMaxIdleSecs:       getEnvInt("DB_MAX_CONN_IDLE_SECS", 300),
		DBMaxLifeSecs:       getEnvInt("DB_MAX_CONN_LIFETIME_SECS", 3600),
		DBConnTimeoutSecs:   getEnvInt("DB_CONN_TIMEOUT_SECS", 10),
		DBStatementCache:    getEnvInt("DB_STATEMENT_CACHE_CAPACITY", 256),
		DBMigrationsDir:     os.Getenv("DB_MIGRATIONS_DIR"),
	}

	users, err := parseIDList(getEnv("IDENTITY_STATIC_USERS", "1,2,3"))
	if err != nil {
		return Config{}, fmt.Errorf("IDENTITY_STATIC_USERS: %w", err)
	}
	cfg.IdentityStaticUsers = users

	if cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required")
	}
	if cfg.DBURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	switch cfg.IdentityMode {
	case IdentityModeHTTP:
		if cfg.IdentityURL == "" {
			return Config{}, fmt.Errorf("IDENTITY_URL is required when IDENTITY_MODE=http")
		}
	case IdentityModeStatic:
	default:
		return Config{}, fmt.Errorf("IDENTITY_MODE must be %q or %q", IdentityModeHTTP, IdentityModeStatic)
	}
	if cfg.IdentityTimeoutSecs <= 0 {
		return Config{}, fmt.Errorf("IDENTITY_TIMEOUT_SECS must be positive")
	}
	if cfg.RankingConfidence <= 0 {
		return Config{}, fmt.Errorf("RANKING_CONFIDENCE must be positive")
	}
	if cfg.RankingWorkers <= 0 {
		return Config{}, fmt.Errorf("RANKING_WORKERS must be positive")
	}
	if cfg.MaxImagesPerHostel <= 0 {
		return Config{}, fmt.Errorf("MAX_IMAGES_PER_HOSTEL must be positive")
	}
	if cfg.DBMaxConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if cfg.DBMinConns < 0 {
		return Config{}, fmt.Errorf("DB_MIN_CONNS must be non-negative")
	}
	if cfg.DBMaxConns > 0 && cfg.DBMinConns > cfg.DBMaxConns {
		return Config{}, fmt.Errorf("DB_MIN_CONNS cannot exceed DB_MAX_CONNS")
	}
	if cfg.DBStatementCache < 0 {
		return Config{}, fmt.Errorf("DB_STATEMENT_CACHE_CAPACITY must be non-negative")
	}

	return cfg, nil
}

// ImagesEnabled reports whether an image store is configured.
func (c Config) ImagesEnabled() bool {
	return c.CloudinaryURL != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
