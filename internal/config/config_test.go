package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  secret: "s3cret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "storage/storage.db", cfg.Storage.Path)
	assert.Equal(t, "localhost:8081", cfg.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.ProtectLists)
	assert.Equal(t, "http://localhost:3000", cfg.CORS.AllowedOrigin)
	assert.Equal(t, 3306, cfg.Storage.MySQL.Port)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := writeConfig(t, `
env: "prod"
storage:
  driver: "mysql"
  mysql:
    host: "db"
    port: 3307
    user: "books"
    password: "pw"
    database: "library"
http_server:
  address: ":9000"
auth:
  secret: "s3cret"
  token_ttl: "30m"
  protect_lists: true
cors:
  allowed_origin: "https://books.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverMySQL, cfg.Storage.Driver)
	assert.Equal(t, MySQL{Host: "db", Port: 3307, User: "books", Password: "pw", Database: "library"}, cfg.Storage.MySQL)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.ProtectLists)
	assert.Equal(t, "https://books.example.com", cfg.CORS.AllowedOrigin)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  secret: "from-file"
`)
	t.Setenv("AUTH_SECRET", "from-env")
	t.Setenv("HTTP_SERVER_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.Secret)
	assert.Equal(t, ":7000", cfg.Addr)
}

func TestLoad_MissingSecret(t *testing.T) {
	path := writeConfig(t, `env: "dev"`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: Storage{Driver: DriverSQLite, Path: "x.db"},
			Auth:    Auth{Secret: "s", TokenTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid sqlite", func(c *Config) {}, false},
		{"valid mysql", func(c *Config) {
			c.Storage.Driver = DriverMySQL
			c.Storage.MySQL.Database = "BookNest"
		}, false},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "postgres" }, true},
		{"sqlite without path", func(c *Config) { c.Storage.Path = "" }, true},
		{"mysql without database", func(c *Config) { c.Storage.Driver = DriverMySQL }, true},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
