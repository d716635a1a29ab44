package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/people")

	// Ignore error if config file not found
	_ = v.ReadInConfig()

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")

	// Store
	cfg.Store.Driver = strings.ToLower(v.GetString("store_driver"))

	// SQLite
	cfg.SQLite.Path = v.GetString("sqlite_path")
	cfg.SQLite.BusyTimeoutMs = v.GetInt("sqlite_busy_timeout_ms")

	// PostgreSQL
	cfg.Postgres.Host = v.GetString("postgres_host")
	cfg.Postgres.Port = v.GetInt("postgres_port")
	cfg.Postgres.User = v.GetString("postgres_user")
	cfg.Postgres.Password = v.GetString("postgres_password")
	cfg.Postgres.Database = v.GetString("postgres_db")
	cfg.Postgres.SSLMode = v.GetString("postgres_ssl_mode")
	cfg.Postgres.MaxConns = v.GetInt32("postgres_max_conns")
	cfg.Postgres.MinConns = v.GetInt32("postgres_min_conns")

	// Redis
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// Rate Limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.Max = v.GetInt("rate_limit_max")
	cfg.RateLimit.WindowSeconds = v.GetInt("rate_limit_window_seconds")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Sentry
	cfg.Sentry.Enabled = v.GetBool("sentry_enabled")
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.Environment = v.GetString("sentry_environment")
	cfg.Sentry.Release = v.GetString("sentry_release")
	cfg.Sentry.Debug = v.GetBool("sentry_debug")
	cfg.Sentry.SampleRate = v.GetFloat64("sentry_sample_rate")
	cfg.Sentry.TracesSampleRate = v.GetFloat64("sentry_traces_sample_rate")

	// Random selection
	cfg.Random.Policy = strings.ToLower(v.GetString("random_policy"))

	// Events
	cfg.Events.Enabled = v.GetBool("events_enabled")
	cfg.Events.Queue = v.GetString("events_queue")

	// Worker
	cfg.Worker.Concurrency = v.GetInt("worker_concurrency")
	cfg.Worker.MetricsPort = v.GetInt("worker_metrics_port")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8080)
	v.SetDefault("server_env", "development")

	// Store defaults
	v.SetDefault("store_driver", StoreDriverSQLite)
	v.SetDefault("sqlite_path", "people.db")
	v.SetDefault("sqlite_busy_timeout_ms", 5000)

	// PostgreSQL defaults
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "people")
	v.SetDefault("postgres_password", "people")
	v.SetDefault("postgres_db", "people")
	v.SetDefault("postgres_ssl_mode", "disable")
	v.SetDefault("postgres_max_conns", 10)
	v.SetDefault("postgres_min_conns", 2)

	// Redis defaults
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_max", 100)
	v.SetDefault("rate_limit_window_seconds", 60)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Sentry defaults
	v.SetDefault("sentry_enabled", false)
	v.SetDefault("sentry_sample_rate", 1.0)
	v.SetDefault("sentry_traces_sample_rate", 0.1)

	// Random selection defaults
	v.SetDefault("random_policy", RandomPolicyUniform)

	// Events defaults
	v.SetDefault("events_enabled", false)
	v.SetDefault("events_queue", "default")

	// Worker defaults
	v.SetDefault("worker_concurrency", 5)
	v.SetDefault("worker_metrics_port", 9091)
}

func validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case StoreDriverSQLite, StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}

	switch cfg.Random.Policy {
	case RandomPolicyUniform, RandomPolicyDenseID:
	default:
		return fmt.Errorf("unsupported random policy %q", cfg.Random.Policy)
	}

	if cfg.Store.Driver == StoreDriverSQLite && cfg.SQLite.Path == "" {
		return fmt.Errorf("sqlite path must be set when using the sqlite store")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}

	if cfg.Worker.MetricsPort < 0 || cfg.Worker.MetricsPort > 65535 {
		return fmt.Errorf("invalid worker metrics port %d", cfg.Worker.MetricsPort)
	}

	return nil
}
