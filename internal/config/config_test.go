package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults when env is empty", func(t *testing.T) {
		t.Setenv("LISTEN_ADDR", "")
		t.Setenv("STORE_PATH", "")
		t.Setenv("STORE_QUOTA_BYTES", "")
		t.Setenv("REFRESH_INTERVAL_SECONDS", "")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultListenAddr, cfg.ListenAddr)
		require.Equal(t, DefaultStorePath, cfg.StorePath)
		require.Equal(t, DefaultDocumentsDir, cfg.DocumentsDir)
		require.Equal(t, int64(DefaultStoreQuotaBytes), cfg.StoreQuotaBytes)
		require.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	})

	t.Run("loads all config from env", func(t *testing.T) {
		t.Setenv("LISTEN_ADDR", "0.0.0.0:9000")
		t.Setenv("STORE_PATH", "/tmp/desk.json")
		t.Setenv("DOCUMENTS_DIR", "/tmp/docs")
		t.Setenv("STORE_QUOTA_BYTES", "1048576")
		t.Setenv("REFRESH_INTERVAL_SECONDS", "30")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
		require.Equal(t, "/tmp/desk.json", cfg.StorePath)
		require.Equal(t, "/tmp/docs", cfg.DocumentsDir)
		require.Equal(t, int64(1048576), cfg.StoreQuotaBytes)
		require.Equal(t, 30*time.Second, cfg.RefreshInterval)
		require.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("ignores invalid quota", func(t *testing.T) {
		t.Setenv("STORE_QUOTA_BYTES", "not-a-number")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, int64(DefaultStoreQuotaBytes), cfg.StoreQuotaBytes)
	})

	t.Run("ignores non-positive refresh interval", func(t *testing.T) {
		t.Setenv("REFRESH_INTERVAL_SECONDS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	})
}
