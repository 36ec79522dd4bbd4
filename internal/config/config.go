package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public Google Books API root
const DefaultBaseURL = "https://www.googleapis.com/books/v1"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Network NetworkConfig `mapstructure:"network"`
	Log     LogConfig     `mapstructure:"log"`
}

// APIConfig holds book search API settings
type APIConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	MaxResults   int    `mapstructure:"max_results"`
	DefaultQuery string `mapstructure:"default_query"`
}

// NetworkConfig holds network settings
type NetworkConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"` // 0 keeps the http.Client default
	UserAgent string        `mapstructure:"user_agent"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // text, json
	File   string `mapstructure:"file"`   // TUI log destination, discarded when empty
}

var cfg *Config

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bookshelf")
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Init initializes the configuration
func Init(cfgFile string) error {
	// Set defaults
	viper.SetDefault("api.base_url", DefaultBaseURL)
	viper.SetDefault("api.max_results", 40)
	viper.SetDefault("api.default_query", "jazz history")
	viper.SetDefault("network.timeout", time.Duration(0))
	viper.SetDefault("network.user_agent", "bookshelf")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("log.file", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(GetConfigDir())
	}

	// Environment variable overrides
	viper.SetEnvPrefix("BOOKSHELF")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()

	cfg = nil
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		cfg = &Config{}
		_ = viper.Unmarshal(cfg)
		if cfg.API.MaxResults <= 0 {
			cfg.API.MaxResults = 40
		}
		cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	return cfg
}

// Set sets a configuration value
func Set(key, value string) error {
	viper.Set(key, value)

	// Ensure config directory exists
	configDir := GetConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Reset cached config
	cfg = nil

	return viper.WriteConfigAs(GetConfigPath())
}

// GetValue retrieves a configuration value
func GetValue(key string) interface{} {
	return viper.Get(key)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
