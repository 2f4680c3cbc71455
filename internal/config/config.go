// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, applies defaults and
// validates that required values are present so they can be reused across
// the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Pick the database connection string for the current run mode.
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before any config is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix BLOGLIST_. Keys are lowercased with the
	prefix removed, and nesting uses the "." delimiter:

		BLOGLIST_SERVER.PORT       -> server.port       -> Config.Server.Port
		BLOGLIST_DATABASE.TEST_URL -> database.test_url -> Config.Database.TestURL
*/

// EnvPrefix is the prefix every environment variable read by LoadConfig must carry.
const EnvPrefix = "BLOGLIST_"

// EnvTest is the run mode in which the test database connection string is used.
const EnvTest = "test"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`
}

// DatabaseConfig contains the MongoDB connection parameters and pool tuning.
//
// URL is used in every run mode except "test", where TestURL takes over.
type DatabaseConfig struct {
	URL             string `koanf:"url" validate:"required"`
	TestURL         string `koanf:"test_url"`
	Name            string `koanf:"name" validate:"required"`
	Collection      string `koanf:"collection" validate:"required"`
	MaxPoolSize     uint64 `koanf:"max_pool_size" validate:"min=1"`
	MinPoolSize     uint64 `koanf:"min_pool_size"`
	ConnectTimeout  int    `koanf:"connect_timeout" validate:"min=1"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time"`
}

// ConnectionURL returns the connection string for the current run mode.
func (c *Config) ConnectionURL() string {
	if c.Primary.Env == EnvTest {
		return c.Database.TestURL
	}
	return c.Database.URL
}

// RedisConfig contains Redis connection details.
//
// Redis is optional: with an empty Address there is no stats cache and no
// background job server, and stats are computed on every request.
type RedisConfig struct {
	Address  string `koanf:"address"`
	StatsTTL int    `koanf:"stats_ttl" validate:"min=1"`
}

// Enabled reports whether a Redis address has been configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, applies defaults, validates it and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix BLOGLIST_
//   - Unmarshals into Config
//   - Applies defaults for optional values
//   - Validates required config blocks/fields
//   - Overrides observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Observability is seeded with defaults so a partially provided block only
	// overrides the keys that are actually set.
	mainConfig := &Config{Observability: DefaultObservabilityConfig()}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	applyDefaults(mainConfig)

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// The test run mode reads a separate database, the same way the
	// application has always been configured for its API test suite.
	if mainConfig.Primary.Env == EnvTest && mainConfig.Database.TestURL == "" {
		return nil, fmt.Errorf("config validation failed: database.test_url is required when primary.env is %q", EnvTest)
	}

	mainConfig.Observability.ServiceName = "bloglist"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults sets default values for the configuration
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "3003"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if len(cfg.Server.CORSAllowedOrigins) == 0 {
		cfg.Server.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.Database.Name == "" {
		cfg.Database.Name = "bloglist"
	}
	if cfg.Database.Collection == "" {
		cfg.Database.Collection = "blogs"
	}
	if cfg.Database.MaxPoolSize == 0 {
		cfg.Database.MaxPoolSize = 25
	}
	if cfg.Database.ConnectTimeout == 0 {
		cfg.Database.ConnectTimeout = 10
	}

	if cfg.Redis.StatsTTL == 0 {
		cfg.Redis.StatsTTL = 300
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}
}
