package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const (
	EnvAPIKey    = "CINEX_TMDB_API_KEY"
	EnvReadToken = "CINEX_TMDB_READ_TOKEN"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Search  SearchConfig  `toml:"search"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// CatalogConfig contains TMDB API settings.
type CatalogConfig struct {
	BaseURL        string  `toml:"base_url"`
	ImageBaseURL   string  `toml:"image_base_url"`
	APIKey         string  `toml:"api_key"`
	ReadToken      string  `toml:"read_token"`
	Language       string  `toml:"language"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Timeout returns the per-request timeout for catalog calls.
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchConfig points at the local search service.
type SearchConfig struct {
	URL string `toml:"url"`
}

// StorageConfig selects and configures the watchlist's key/value medium.
type StorageConfig struct {
	Driver       string `toml:"driver"`
	Path         string `toml:"path"`
	Dir          string `toml:"dir"`
	Key          string `toml:"key"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr joins host and port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// UIConfig contains TUI settings.
type UIConfig struct {
	RemovalDelayMS int    `toml:"removal_delay_ms"`
	LogFile        string `toml:"log_file"`
}

// RemovalDelay is how long a removed entry stays visually marked.
func (u UIConfig) RemovalDelay() time.Duration {
	if u.RemovalDelayMS <= 0 {
		return 300 * time.Millisecond
	}
	return time.Duration(u.RemovalDelayMS) * time.Millisecond
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	config.ApplyEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides catalog credentials from the environment when set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Catalog.APIKey = v
	}
	if v := os.Getenv(EnvReadToken); v != "" {
		c.Catalog.ReadToken = v
	}
}

// Validate checks the settings the application cannot run without.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite", "file":
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("%w: storage key is empty", ErrInvalidConfig)
	}
	if c.Catalog.RateLimit <= 0 {
		return fmt.Errorf("%w: catalog rate_limit must be positive", ErrInvalidConfig)
	}
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog base_url is empty", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
