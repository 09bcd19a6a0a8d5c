package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies the photo source backend
type SourceType string

const (
	SourceTypePlaceholder SourceType = "jsonplaceholder"
)

// View names accepted by ui.default_view
const (
	ViewGrid  = "grid"
	ViewTable = "table"
)

// Config holds all application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Bulk    BulkConfig    `mapstructure:"bulk"`
	Browser BrowserConfig `mapstructure:"browser"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig holds photo source configuration
type SourceConfig struct {
	Type        SourceType    `mapstructure:"type"`
	BaseURL     string        `mapstructure:"base_url"`
	TotalPhotos int           `mapstructure:"total_photos"` // used when the source reports no total
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   float64       `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
	UserAgent   string        `mapstructure:"user_agent"`
}

// CacheConfig holds response cache configuration
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView    string        `mapstructure:"default_view"`
	GridColumns    int           `mapstructure:"grid_columns"` // 0 = fit to width
	Debounce       time.Duration `mapstructure:"debounce"`
	TableLoadDelay time.Duration `mapstructure:"table_load_delay"`
	Collation      string        `mapstructure:"collation"` // BCP 47 tag for title sorting
}

// BulkConfig holds the bulk request draft settings
type BulkConfig struct {
	Recipients []string      `mapstructure:"recipients"`
	Subject    string        `mapstructure:"subject"`
	Filename   string        `mapstructure:"filename"`
	OutputDir  string        `mapstructure:"output_dir"`
	CloseDelay time.Duration `mapstructure:"close_delay"`
}

// BrowserConfig holds the external viewer used to open photo URLs
type BrowserConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Type:        SourceTypePlaceholder,
			BaseURL:     "https://jsonplaceholder.typicode.com",
			TotalPhotos: 5000,
			Timeout:     30 * time.Second,
			RateLimit:   0,
			UserAgent:   "PhotoDeck/1.0",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCachePath(),
			TTL:     5 * time.Minute,
		},
		UI: UIConfig{
			DefaultView:    ViewGrid,
			GridColumns:    0,
			Debounce:       500 * time.Millisecond,
			TableLoadDelay: 2 * time.Second,
			Collation:      "en",
		},
		Bulk: BulkConfig{
			Recipients: []string{"kiranr@ideyalabs.com", "muralich@ideyalabs.com"},
			Subject:    "Daylight Tracking Update Bulk Request - Carrier Name",
			Filename:   "bulk-request-template.eml",
			OutputDir:  ".",
			CloseDelay: 2 * time.Second,
		},
		Browser: BrowserConfig{
			Command: "",
			Args:    []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source.BaseURL) == "" {
		return fmt.Errorf("source.base_url is required")
	}
	if c.Source.Type != "" && c.Source.Type != SourceTypePlaceholder {
		return fmt.Errorf("unknown source type: %s", c.Source.Type)
	}
	if c.Source.TotalPhotos < 0 {
		return fmt.Errorf("source.total_photos must not be negative")
	}
	switch c.UI.DefaultView {
	case ViewGrid, ViewTable:
	default:
		return fmt.Errorf("ui.default_view must be %q or %q, got %q", ViewGrid, ViewTable, c.UI.DefaultView)
	}
	if c.UI.GridColumns < 0 {
		return fmt.Errorf("ui.grid_columns must not be negative")
	}
	for name, d := range map[string]time.Duration{
		"source.timeout":      c.Source.Timeout,
		"cache.ttl":           c.Cache.TTL,
		"ui.debounce":         c.UI.Debounce,
		"ui.table_load_delay": c.UI.TableLoadDelay,
		"bulk.close_delay":    c.Bulk.CloseDelay,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}
	if strings.TrimSpace(c.Bulk.Filename) == "" {
		return fmt.Errorf("bulk.filename is required")
	}
	return nil
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "photodeck", "photodeck.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "photodeck", "photodeck.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "photodeck")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "photodeck")
	}
}

// LoadConfig loads configuration from file and environment. An empty path
// searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	return loadConfig(viper.GetViper(), path)
}

func loadConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. PHOTODECK_SOURCE_BASE_URL
	v.SetEnvPrefix("PHOTODECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// bindEnvKeys registers every known key so AutomaticEnv overrides reach
// Unmarshal even when the key is absent from the config file.
func bindEnvKeys(v *viper.Viper) {
	for _, k := range []string{
		"source.type", "source.base_url", "source.total_photos", "source.timeout",
		"source.rate_limit", "source.user_agent",
		"cache.enabled", "cache.dir", "cache.ttl",
		"ui.default_view", "ui.grid_columns", "ui.debounce", "ui.table_load_delay", "ui.collation",
		"bulk.subject", "bulk.filename", "bulk.output_dir", "bulk.close_delay",
		"browser.command",
		"logging.file", "logging.level",
	} {
		_ = v.BindEnv(k)
	}
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("source.type", cfg.Source.Type)
	v.Set("source.base_url", cfg.Source.BaseURL)
	v.Set("source.total_photos", cfg.Source.TotalPhotos)
	v.Set("source.timeout", cfg.Source.Timeout.String())
	v.Set("source.rate_limit", cfg.Source.RateLimit)
	v.Set("source.user_agent", cfg.Source.UserAgent)

	v.Set("cache.enabled", cfg.Cache.Enabled)
	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("cache.ttl", cfg.Cache.TTL.String())

	v.Set("ui.default_view", cfg.UI.DefaultView)
	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.debounce", cfg.UI.Debounce.String())
	v.Set("ui.table_load_delay", cfg.UI.TableLoadDelay.String())
	v.Set("ui.collation", cfg.UI.Collation)

	v.Set("bulk.recipients", cfg.Bulk.Recipients)
	v.Set("bulk.subject", cfg.Bulk.Subject)
	v.Set("bulk.filename", cfg.Bulk.Filename)
	v.Set("bulk.output_dir", cfg.Bulk.OutputDir)
	v.Set("bulk.close_delay", cfg.Bulk.CloseDelay.String())

	v.Set("browser.command", cfg.Browser.Command)
	v.Set("browser.args", cfg.Browser.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "photodeck", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "photodeck", "cache")
	}
}

// CacheDir returns the directory the response cache should live in, or ""
// for memory-only caching.
func (c *Config) CacheDir() string {
	if !c.Cache.Enabled {
		return ""
	}
	if c.Cache.Dir == "" {
		return defaultCachePath()
	}
	return expandHome(c.Cache.Dir)
}

// ClearCache removes all cached data
func ClearCache(dir string) error {
	if dir == "" {
		dir = defaultCachePath()
	}
	if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// GetCachePath returns the default cache directory path
func GetCachePath() string {
	return defaultCachePath()
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
