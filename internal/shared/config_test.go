package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()
		if config.Storage.Path != "./cinex.db" {
			t.Errorf("expected storage path ./cinex.db, got %s", config.Storage.Path)
		}
		if config.Storage.Key != "cine_watchlist" {
			t.Errorf("expected storage key cine_watchlist, got %s", config.Storage.Key)
		}
		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}
		if config.Search.URL != "http://localhost:5000" {
			t.Errorf("expected search URL http://localhost:5000, got %s", config.Search.URL)
		}
		if config.Catalog.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("unexpected catalog base URL %s", config.Catalog.BaseURL)
		}
		if got := config.UI.RemovalDelay(); got != 300*time.Millisecond {
			t.Errorf("expected removal delay 300ms, got %v", got)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Path != DefaultConfig().Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[catalog]
api_key = "test_api_key"
rate_limit = 2.5

[storage]
driver = "file"
dir = "/tmp/cinex"

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Catalog.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.Catalog.APIKey)
		}
		if config.Catalog.RateLimit != 2.5 {
			t.Errorf("expected rate limit 2.5, got %v", config.Catalog.RateLimit)
		}
		if config.Storage.Driver != "file" {
			t.Errorf("expected file driver, got %s", config.Storage.Driver)
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		// untouched sections keep their defaults
		if config.Storage.Key != "cine_watchlist" {
			t.Errorf("expected default storage key, got %s", config.Storage.Key)
		}
	})

	t.Run("LoadConfig rejects unknown driver", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[storage]\ndriver = \"redis\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvReadToken, "env-token")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.Catalog.APIKey != "env-key" {
			t.Errorf("expected env api key, got %s", config.Catalog.APIKey)
		}
		if config.Catalog.ReadToken != "env-token" {
			t.Errorf("expected env read token, got %s", config.Catalog.ReadToken)
		}
	})
}
