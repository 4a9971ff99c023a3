package app

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dori/workbridge/internal/api"
	"github.com/dori/workbridge/internal/db"
)

// Config holds application configuration
type Config struct {
	DataDir       string
	DBPath        string
	APIURL        string
	PageSize      int
	HTTPTimeout   time.Duration // Zero means none
	LogLevel      string
	Debug         bool
	DesktopNotify bool
	Theme         string
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:       db.DefaultDataDir(),
		DBPath:        db.DefaultDBPath(),
		APIURL:        api.DefaultBaseURL,
		PageSize:      api.DefaultPageSize,
		LogLevel:      "info",
		DesktopNotify: true,
		Theme:         "nord",
	}
}

// LoadConfig reads an optional .env file and then the environment on top
// of the defaults.
func LoadConfig() *Config {
	// A missing .env is normal
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.APIURL = getEnv("WORKBRIDGE_API_URL", cfg.APIURL)
	if dir := getEnv("WORKBRIDGE_DATA_DIR", ""); dir != "" {
		cfg.SetDataDir(dir)
	}
	cfg.PageSize = getEnvAsInt("WORKBRIDGE_PAGE_SIZE", cfg.PageSize)
	cfg.HTTPTimeout = getEnvAsDuration("WORKBRIDGE_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.LogLevel = getEnv("WORKBRIDGE_LOG_LEVEL", cfg.LogLevel)
	cfg.Debug = getEnvAsBool("WORKBRIDGE_DEBUG", false)
	cfg.DesktopNotify = getEnvAsBool("WORKBRIDGE_DESKTOP_NOTIFY", cfg.DesktopNotify)
	cfg.Theme = getEnv("WORKBRIDGE_THEME", cfg.Theme)
	return cfg
}

// SetDataDir moves the data directory and the database inside it
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.DBPath = filepath.Join(dir, "workbridge.db")
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("WORKBRIDGE_API_URL is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("WORKBRIDGE_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("WORKBRIDGE_PAGE_SIZE must be at least 1, got %d", c.PageSize)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("WORKBRIDGE_HTTP_TIMEOUT must not be negative")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts a Go duration ("30s") or a bare number of seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
