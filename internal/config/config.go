package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds record-service configuration
type ServerConfig struct {
	URL      string `mapstructure:"url"`      // Record service base URL
	Token    string `mapstructure:"token"`    // Bearer token
	UserID   string `mapstructure:"user_id"`  // Opaque user id
	Username string `mapstructure:"username"` // Display name
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridSize int  `mapstructure:"grid_size"` // Entries per page (4, 9, 16, 25, 36, 50)
	DarkMode bool `mapstructure:"dark_mode"`
}

// CatalogConfig holds catalog source configuration
type CatalogConfig struct {
	APIURL   string `mapstructure:"api_url"`  // Species API base URL
	Language string `mapstructure:"language"` // Localized name language, falls back to default
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{},
		UI: UIConfig{
			GridSize: 16,
			DarkMode: true,
		},
		Catalog: CatalogConfig{
			APIURL:   "https://pokeapi.co/api/v2",
			Language: "fr",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "dexterm", "dexterm.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "dexterm", "dexterm.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "dexterm")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "dexterm")
	}
}

// defaultDataPath returns the local store directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "dexterm", "data")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "dexterm", "data")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("DEXTERM")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)
	viper.Set("server.user_id", cfg.Server.UserID)
	viper.Set("server.username", cfg.Server.Username)

	viper.Set("ui.grid_size", cfg.UI.GridSize)
	viper.Set("ui.dark_mode", cfg.UI.DarkMode)

	viper.Set("catalog.api_url", cfg.Catalog.APIURL)
	viper.Set("catalog.language", cfg.Catalog.Language)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the record service URL and user id are set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != "" && c.Server.UserID != ""
}

// DataPath returns the local store directory
func DataPath() string {
	return defaultDataPath()
}
