// Package config loads fintracker settings from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. FINTRACKER_API_BASE_URL.
const EnvPrefix = "FINTRACKER"

// Config is the validated application configuration.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	UI       UIConfig
}

// ServerConfig configures the backend HTTP listener.
type ServerConfig struct {
	Addr string
}

// APIConfig configures the client side of the backend API.
type APIConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig selects the slog level and handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale string
}

// SetDefaults registers every key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.max_attempts", 1)
	v.SetDefault("database.path", "~/.local/share/fintracker/fintracker.db")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("ui.locale", "es")
}

// Init points v at the config file (cfgFile, or the standard locations),
// enables FINTRACKER_ environment overrides and reads the file if there is one.
// A .env file in the working directory is loaded into the environment first.
func Init(v *viper.Viper, cfgFile string) error {
	if err := LoadDotEnv(".env"); err != nil {
		return err
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "fintracker"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path without overriding variables
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the settings out of v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Addr: v.GetString("server.addr")},
		API: APIConfig{
			BaseURL:     v.GetString("api.base_url"),
			Timeout:     v.GetDuration("api.timeout"),
			MaxAttempts: v.GetInt("api.max_attempts"),
		},
		Database: DatabaseConfig{Path: ExpandPath(v.GetString("database.path"))},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		UI: UIConfig{Locale: v.GetString("ui.locale")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an http(s) URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.API.MaxAttempts < 1 {
		return fmt.Errorf("%w: api.max_attempts must be at least 1", common.ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format %q", common.ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}
