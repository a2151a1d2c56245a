package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultReplyText is the canned auto-reply sent for textual inbound messages.
// The echo filter matches on this exact prefix, so changing it at runtime via
// REPLY_TEXT changes echo detection as well.
const DefaultReplyText = "Thanks for reaching out! We received your message and will get back to you shortly."

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Row store selection. "auto" picks postgres when DatabaseURL is set,
	// otherwise the spreadsheet store.
	StoreBackend string
	DatabaseURL  string

	// Spreadsheet row store.
	SpreadsheetID string
	// GoogleCredentials holds service-account JSON, either raw or base64-encoded.
	GoogleCredentials string

	// WhatsApp gateway send API.
	GreenAPIBaseURL    string
	GreenAPIInstanceID string
	GreenAPIToken      string

	ReplyText string

	DedupTTL           time.Duration
	DedupSweepInterval time.Duration

	MaxBodyBytes int64
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "3000"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		StoreBackend:       strings.ToLower(strings.TrimSpace(getEnv("STORE_BACKEND", "auto"))),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SpreadsheetID:      getEnv("SPREADSHEET_ID", ""),
		GoogleCredentials:  getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GreenAPIBaseURL:    getEnv("GREENAPI_BASE_URL", ""),
		GreenAPIInstanceID: getEnv("GREENAPI_INSTANCE_ID", ""),
		GreenAPIToken:      getEnv("GREENAPI_API_TOKEN", ""),
		ReplyText:          getEnv("REPLY_TEXT", DefaultReplyText),
		DedupTTL:           getEnvAsDuration("DEDUP_TTL", 2*time.Minute),
		DedupSweepInterval: getEnvAsDuration("DEDUP_SWEEP_INTERVAL", 30*time.Second),
		MaxBodyBytes:       getEnvAsInt64("MAX_BODY_BYTES", 1<<20),
	}
}

// UsePostgres reports whether the relational store should back leads and
// conversation logs.
func (c *Config) UsePostgres() bool {
	switch c.StoreBackend {
	case "postgres":
		return true
	case "sheets":
		return false
	default:
		return c.DatabaseURL != ""
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
