// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every value read from the YAML file can be overridden by the environment
// variable named in its env:"..." tag.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Supported storage drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Config is the root configuration structure.
//
// env-required:"true" means the app refuses to start if that value is
// missing.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage    Storage `yaml:"storage"`
	HTTPServer `yaml:"http_server"`
	Auth       Auth `yaml:"auth"`
	CORS       CORS `yaml:"cors"`
}

// Storage selects and parameterizes the record store.
type Storage struct {
	// Driver is either "sqlite3" or "mysql".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite3"`

	// Path is the filesystem path to the SQLite .db file.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/storage.db"`

	MySQL MySQL `yaml:"mysql"`
}

// MySQL holds connection parameters used when Driver is "mysql".
type MySQL struct {
	Host     string `yaml:"host"     env:"MYSQL_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"MYSQL_PORT"     env-default:"3306"`
	User     string `yaml:"user"     env:"MYSQL_USER"     env-default:"root"`
	Password string `yaml:"password" env:"MYSQL_PASSWORD"`
	Database string `yaml:"database" env:"MYSQL_DATABASE" env-default:"BookNest"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8081".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8081"`
}

// Auth configures session tokens.
type Auth struct {
	// Secret signs every session token. There is no default on purpose.
	Secret string `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`

	// TokenTTL is how long an issued token stays valid.
	TokenTTL time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"2h"`

	// ProtectLists makes GET /students and GET /books require a session.
	ProtectLists bool `yaml:"protect_lists" env:"AUTH_PROTECT_LISTS" env-default:"false"`
}

// CORS configures the single browser origin allowed to call the API.
type CORS struct {
	AllowedOrigin string `yaml:"allowed_origin" env:"CORS_ALLOWED_ORIGIN" env-default:"http://localhost:3000"`
}

// Load reads the config file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values cleanenv cannot check on its own.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for driver %q", DriverSQLite)
		}
	case DriverMySQL:
		if c.Storage.MySQL.Database == "" {
			return fmt.Errorf("storage.mysql.database is required for driver %q", DriverMySQL)
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to fatal on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
