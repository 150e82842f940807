// Package config loads service configuration from config.toml, a .env file
// and APP_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Log         LogConfig
	Telemetry   TelemetryConfig
	Idempotency IdempotencyConfig
	Routing     RoutingConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name            string
	Env             string
	Port            string
	DefaultTenantID string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	ShutdownTimeout  time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // minutes
	ConnMaxIdleTime int // minutes
	SlowThreshold   time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds bearer token validation settings.
// Tokens are issued by the identity service; this service only verifies them.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Required bool // reject requests without a bearer token
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled              bool
	CollectorEndpoint    string
	SamplingRatio        float64
	ServiceName          string
	Insecure             bool
	MetricsEnabled       bool
	MetricsInterval      time.Duration
	PoolGaugeInterval    time.Duration
	DBTraceEnabled       bool
	DBLogFullSQL         bool
	DBSlowQueryThreshold time.Duration
}

// IdempotencyConfig controls the Idempotency-Key middleware
type IdempotencyConfig struct {
	Enabled       bool
	TTL           time.Duration
	AllowFallback bool // use the in-memory store when Redis is unreachable
}

// RoutingConfig points at the external route optimization provider
type RoutingConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Load reads configuration. Priority, highest first:
//  1. APP_ environment variables (APP_DATABASE_PASSWORD)
//  2. values from a .env file in the working directory
//  3. config.toml
//  4. built-in defaults
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/fieldstock")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Name:            v.GetString("app.name"),
			Env:             v.GetString("app.env"),
			Port:            v.GetString("app.port"),
			DefaultTenantID: v.GetString("app.default_tenant_id"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			ShutdownTimeout:  v.GetDuration("http.shutdown_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:   v.GetString("jwt.secret"),
			Issuer:   v.GetString("jwt.issuer"),
			Required: v.GetBool("jwt.required"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Telemetry: TelemetryConfig{
			Enabled:              v.GetBool("telemetry.enabled"),
			CollectorEndpoint:    v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:        v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:          v.GetString("telemetry.service_name"),
			Insecure:             v.GetBool("telemetry.insecure"),
			MetricsEnabled:       v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:      v.GetDuration("telemetry.metrics_interval"),
			PoolGaugeInterval:    v.GetDuration("telemetry.pool_gauge_interval"),
			DBTraceEnabled:       v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:         v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThreshold: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
		Idempotency: IdempotencyConfig{
			Enabled:       v.GetBool("idempotency.enabled"),
			TTL:           v.GetDuration("idempotency.ttl"),
			AllowFallback: v.GetBool("idempotency.allow_fallback"),
		},
		Routing: RoutingConfig{
			BaseURL: v.GetString("routing.base_url"),
			APIKey:  v.GetString("routing.api_key"),
			Timeout: v.GetDuration("routing.timeout"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers built-in values. Registering them on viper also
// makes AutomaticEnv pick up APP_ variables for every key.
func setDefaults(v *viper.Viper) {
	defaults := map[string]interface{}{
		"app.name":                          "fieldstock",
		"app.env":                           "development",
		"app.port":                          "8080",
		"app.default_tenant_id":             "00000000-0000-0000-0000-000000000001",
		"http.read_timeout":                 15 * time.Second,
		"http.write_timeout":                15 * time.Second,
		"http.idle_timeout":                 60 * time.Second,
		"http.shutdown_timeout":             30 * time.Second,
		"http.max_header_bytes":             1 << 20,
		"http.max_body_size":                int64(2 << 20),
		"http.cors_allow_methods":           []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		"http.cors_allow_headers":           []string{"Content-Type", "Authorization", "X-Request-ID", "X-Tenant-ID", "X-User-ID", "Idempotency-Key"},
		"database.host":                     "localhost",
		"database.port":                     5432,
		"database.user":                     "postgres",
		"database.dbname":                   "fieldstock",
		"database.sslmode":                  "disable",
		"database.max_open_conns":           25,
		"database.max_idle_conns":           5,
		"database.conn_max_lifetime":        60,
		"database.conn_max_idle_time":       30,
		"database.slow_threshold":           200 * time.Millisecond,
		"redis.enabled":                     false,
		"redis.host":                        "localhost",
		"redis.port":                        6379,
		"jwt.issuer":                        "fieldstock-identity",
		"jwt.required":                      false,
		"log.level":                         "info",
		"log.format":                        "console",
		"log.output":                        "stdout",
		"telemetry.collector_endpoint":      "localhost:4317",
		"telemetry.sampling_ratio":          1.0,
		"telemetry.service_name":            "fieldstock",
		"telemetry.metrics_interval":        60 * time.Second,
		"telemetry.pool_gauge_interval":     5 * time.Minute,
		"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
		"idempotency.enabled":               true,
		"idempotency.ttl":                   24 * time.Hour,
		"idempotency.allow_fallback":        true,
		"routing.timeout":                   10 * time.Second,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	if c.JWT.Required && c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required when jwt.required is true")
	}
	if c.Routing.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.Routing.BaseURL); err != nil {
			return fmt.Errorf("routing.base_url is not a valid URL: %w", err)
		}
	}

	if c.App.Env == "production" {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}
	return nil
}

// IsProduction reports whether the service runs with production checks
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
