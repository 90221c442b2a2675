package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Bookmark storage backends.
const (
	BookmarkBackendFile      = "file"
	BookmarkBackendPostgres  = "postgres"
	BookmarkBackendDatastore = "datastore"
	BookmarkBackendMemory    = "memory"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT        string
	METRICS_ENABLED bool
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
	LOG_FORMAT    string
	// roster source config
	ROSTER_BASE_URL       string
	ROSTER_FETCH_LIMIT    int
	ANALYTICS_FETCH_LIMIT int
	PAGE_SIZE             int
	// auth config
	AUTH_EMAIL    string
	AUTH_PASSWORD string
	AUTH_LATENCY  time.Duration
	// bookmark storage config
	BOOKMARK_BACKEND   string
	BOOKMARK_FILE_PATH string
	BOOKMARK_SLOT      string
	// database config
	DB_HOST              string
	DB_PORT              int
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_CONN_MAX_LIFETIME time.Duration
	DB_MAX_IDLE_CONNS    int
	DB_MAX_OPEN_CONNS    int
	// datastore config
	DATASTORE_PROJECT_ID string
	// search config
	ELASTIC_URL   string
	ELASTIC_INDEX string
}

// LoadEnvConfig reads .env (when present) and the process environment into DefaultEnvConfig.
func LoadEnvConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:              getEnvString("APP_PORT", "8080"),
		METRICS_ENABLED:       getEnvBool("METRICS_ENABLED", true),
		LOG_FILE_PATH:         getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:             getEnvString("LOG_LEVEL", "info"),
		LOG_FORMAT:            getEnvString("LOG_FORMAT", "json"),
		ROSTER_BASE_URL:       strings.TrimRight(getEnvString("ROSTER_BASE_URL", "https://dummyjson.com"), "/"),
		ROSTER_FETCH_LIMIT:    getEnvInt("ROSTER_FETCH_LIMIT", 50),
		ANALYTICS_FETCH_LIMIT: getEnvInt("ANALYTICS_FETCH_LIMIT", 100),
		PAGE_SIZE:             getEnvInt("PAGE_SIZE", 8),
		AUTH_EMAIL:            getEnvString("AUTH_EMAIL", "hr.manager@company.com"),
		AUTH_PASSWORD:         getEnvString("AUTH_PASSWORD", "hrpass123"),
		AUTH_LATENCY:          getEnvDuration("AUTH_LATENCY", time.Second),
		BOOKMARK_BACKEND:      strings.ToLower(getEnvString("BOOKMARK_BACKEND", BookmarkBackendFile)),
		BOOKMARK_FILE_PATH:    getEnvString("BOOKMARK_FILE_PATH", "bookmarks.json"),
		BOOKMARK_SLOT:         getEnvString("BOOKMARK_SLOT", "bookmarkedEmployees"),
		DB_HOST:               getEnvString("DB_HOST", "localhost"),
		DB_PORT:               getEnvInt("DB_PORT", 5432),
		DB_USER:               getEnvString("DB_USER", "postgres"),
		DB_PASSWORD:           getEnvString("DB_PASSWORD", "postgres"),
		DB_NAME:               getEnvString("DB_NAME", "postgres"),
		DB_SSL_MODE:           getEnvString("DB_SSL_MODE", "disable"),
		DB_CONN_MAX_LIFETIME:  getEnvDuration("DB_CONN_MAX_LIFETIME", 20*time.Minute),
		DB_MAX_IDLE_CONNS:     getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DB_MAX_OPEN_CONNS:     getEnvInt("DB_MAX_OPEN_CONNS", 100),
		DATASTORE_PROJECT_ID:  getEnvString("DATASTORE_PROJECT_ID", ""),
		ELASTIC_URL:           getEnvString("ELASTIC_URL", ""),
		ELASTIC_INDEX:         getEnvString("ELASTIC_INDEX", "employees"),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		if i, err := strconv.Atoi(val); err == nil {
			return time.Duration(i) * time.Second
		}
	}
	return fallback
}
