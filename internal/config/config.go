// internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/sixmovies/actorpop/internal/logging"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection parameters. Host, Port,
// Database, Username, and Password are bound to the five environment
// variables listed in bindDatabaseEnv; a set variable overrides any value
// from the config file. Nothing else about the core pipeline is
// configurable via environment.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"dbname"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxConnections    int           `mapstructure:"max_connections"`
	MinConnections    int           `mapstructure:"min_connections"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
}

// WeightsConfig holds the default component weights for recalc_actor_popularity,
// overridable per-invocation by CLI flags.
type WeightsConfig struct {
	Role    float64 `mapstructure:"role"`
	Quality float64 `mapstructure:"quality"`
	Reach   float64 `mapstructure:"reach"`
}

// Config is the complete configuration for the actor popularity engine.
type Config struct {
	Database DatabaseConfig      `mapstructure:"database"`
	Weights  WeightsConfig       `mapstructure:"weights"`
	Logger   logging.LoggerConfig `mapstructure:"logging"`

	// Shards is the number of worker shards the Principal Aggregator splits
	// actor_id space across. 1 disables sharding.
	Shards int `mapstructure:"shards"`

	// BatchSize is the number of actor rows written per UPDATE batch during
	// publication.
	BatchSize int `mapstructure:"batch_size"`
}

// Load reads configuration from an optional YAML file, then overlays the
// five spec-mandated environment variables (which always win), then
// validates the result. configFile may be empty, in which case only
// defaults and environment variables apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)
	v.SetDefault("database.health_check_period", time.Minute)
	v.SetDefault("database.connect_timeout", 10*time.Second)
	v.SetDefault("weights.role", 0.15)
	v.SetDefault("weights.quality", 0.70)
	v.SetDefault("weights.reach", 0.15)
	v.SetDefault("shards", 8)
	v.SetDefault("batch_size", 5000)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := bindDatabaseEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// bindDatabaseEnv binds the five environment variables spec.md §6 fixes as
// the only caller-facing database configuration surface.
func bindDatabaseEnv(v *viper.Viper) error {
	binds := map[string]string{
		"database.host":     "DB_HOST",
		"database.port":     "DB_PORT",
		"database.dbname":   "DB_NAME",
		"database.username": "DB_USER",
		"database.password": "DB_PASSWORD",
	}
	for key, env := range binds {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("binding %s: %w", env, err)
		}
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return fmt.Errorf("DB_PORT must be between 1-65535, got: %d", cfg.Database.Port)
	}
	if cfg.Database.Database == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if cfg.Database.Username == "" {
		return fmt.Errorf("DB_USER is required")
	}

	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if cfg.Database.SSLMode != "" && !validSSLModes[cfg.Database.SSLMode] {
		return fmt.Errorf("invalid sslmode: %s (valid: disable, require, verify-ca, verify-full)", cfg.Database.SSLMode)
	}

	if cfg.Weights.Role < 0 || cfg.Weights.Quality < 0 || cfg.Weights.Reach < 0 {
		return fmt.Errorf("weights must be non-negative")
	}

	if cfg.Shards <= 0 {
		return fmt.Errorf("shards must be positive, got: %d", cfg.Shards)
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got: %d", cfg.BatchSize)
	}

	return nil
}
