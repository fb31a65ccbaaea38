package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/fintracker/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("FINTRACKER_TEST_DIR", "/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"memory", ":memory:", ":memory:"},
		{"tilde", "~", home},
		{"tilde prefix", "~/fin/db.sqlite", filepath.Join(home, "fin", "db.sqlite")},
		{"env var", "$FINTRACKER_TEST_DIR/fin.db", "/data/fin.db"},
		{"absolute", "/var/lib/fin.db", "/var/lib/fin.db"},
		{"tilde elsewhere", "/tmp/~user", "/tmp/~user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.MaxAttempts)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "es", cfg.UI.Locale)
	assert.NotContains(t, cfg.Database.Path, "~")
}

func TestInitReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
api:
  base_url: https://fin.example.com
  timeout: 5s
database:
  path: /tmp/fin.db
ui:
  locale: en
`), 0o600))
	t.Setenv("FINTRACKER_API_MAX_ATTEMPTS", "3")

	v := viper.New()
	require.NoError(t, Init(v, cfgFile))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://fin.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.MaxAttempts)
	assert.Equal(t, "/tmp/fin.db", cfg.Database.Path)
	assert.Equal(t, "en", cfg.UI.Locale)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestInitMissingExplicitFile(t *testing.T) {
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FINTRACKER_DOTENV_PROBE=from-file\n"), 0o600))
	t.Setenv("FINTRACKER_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("FINTRACKER_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from-file", os.Getenv("FINTRACKER_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "absent.env")))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:      APIConfig{BaseURL: "http://localhost:8080", Timeout: time.Second, MaxAttempts: 1},
			Database: DatabaseConfig{Path: "/tmp/fin.db"},
			Logging:  LoggingConfig{Level: "debug", Format: "json"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, common.ErrMissingConfig},
		{"non http url", func(c *Config) { c.API.BaseURL = "ftp://host" }, common.ErrInvalidConfig},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, common.ErrInvalidConfig},
		{"zero attempts", func(c *Config) { c.API.MaxAttempts = 0 }, common.ErrInvalidConfig},
		{"missing db", func(c *Config) { c.Database.Path = "" }, common.ErrMissingConfig},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, common.ErrInvalidConfig},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
