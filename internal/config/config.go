// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultListenAddr      = "127.0.0.1:8080"
	DefaultStorePath       = "agencydesk.json"
	DefaultDocumentsDir    = "documents"
	DefaultStoreQuotaBytes = 5 << 20 // mirrors the ~5 MB budget of browser storage
	DefaultRefreshInterval = 5 * time.Second
)

// Config holds all configuration for the application.
type Config struct {
	ListenAddr      string
	StorePath       string
	DocumentsDir    string
	StoreQuotaBytes int64
	RefreshInterval time.Duration
	LogLevel        string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      DefaultListenAddr,
		StorePath:       DefaultStorePath,
		DocumentsDir:    DefaultDocumentsDir,
		StoreQuotaBytes: DefaultStoreQuotaBytes,
		RefreshInterval: DefaultRefreshInterval,
		LogLevel:        os.Getenv("LOG_LEVEL"),
	}

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if path := os.Getenv("STORE_PATH"); path != "" {
		cfg.StorePath = path
	}
	if dir := os.Getenv("DOCUMENTS_DIR"); dir != "" {
		cfg.DocumentsDir = dir
	}
	if quotaStr := os.Getenv("STORE_QUOTA_BYTES"); quotaStr != "" {
		if q, err := strconv.ParseInt(quotaStr, 10, 64); err == nil && q > 0 {
			cfg.StoreQuotaBytes = q
		}
	}
	if secStr := os.Getenv("REFRESH_INTERVAL_SECONDS"); secStr != "" {
		if s, err := strconv.Atoi(secStr); err == nil && s > 0 {
			cfg.RefreshInterval = time.Duration(s) * time.Second
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, "LISTEN_ADDR must not be blank")
	}
	if strings.TrimSpace(c.StorePath) == "" {
		errs = append(errs, "STORE_PATH must not be blank")
	}
	if strings.TrimSpace(c.DocumentsDir) == "" {
		errs = append(errs, "DOCUMENTS_DIR must not be blank")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
