package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Backend   BackendConfig   `mapstructure:",squash"`
	Gateway   GatewayConfig   `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Mode      ModeConfig      `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Reports   ReportsConfig   `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

// BackendConfig points at the college fee backend.
type BackendConfig struct {
	URL     string `mapstructure:"BACKEND_URL"`
	Timeout string `mapstructure:"BACKEND_TIMEOUT"`
}

// GatewayConfig describes the payment collection surface.
type GatewayConfig struct {
	KeyID        string `mapstructure:"RAZORPAY_KEY_ID"`
	KeySecret    string `mapstructure:"RAZORPAY_KEY_SECRET"`
	Currency     string `mapstructure:"CURRENCY"`
	MerchantName string `mapstructure:"MERCHANT_NAME"`
	DueDate      string `mapstructure:"FEE_DUE_DATE"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DB_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	OrderTTL string `mapstructure:"ORDER_TTL"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"JWT_SECRET"`
	TokenTTL  string `mapstructure:"JWT_TTL"`
}

// ModeConfig gates the offline demo behaviour.
type ModeConfig struct {
	Offline         bool   `mapstructure:"OFFLINE_MODE"`
	DemoSuccessRate string `mapstructure:"DEMO_SUCCESS_RATE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type SchedulerConfig struct {
	Timezone          string `mapstructure:"SCHEDULER_TIMEZONE"`
	DailyExportSpec   string `mapstructure:"DAILY_EXPORT_CRON"`
	DefaulterSweepSpec string `mapstructure:"DEFAULTER_SWEEP_CRON"`
}

type ReportsConfig struct {
	InstitutionName string `mapstructure:"INSTITUTION_NAME"`
	OutputDir       string `mapstructure:"REPORTS_DIR"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

const developmentSecret = "edupay-dev-secret"

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("BACKEND_URL", "http://localhost:5000")
	v.SetDefault("BACKEND_TIMEOUT", "10s")
	v.SetDefault("RAZORPAY_KEY_ID", "rzp_test_demo")
	v.SetDefault("RAZORPAY_KEY_SECRET", "")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("MERCHANT_NAME", "Edu-Pay")
	v.SetDefault("FEE_DUE_DATE", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("ORDER_TTL", "0")
	v.SetDefault("JWT_SECRET", developmentSecret)
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("OFFLINE_MODE", false)
	v.SetDefault("DEMO_SUCCESS_RATE", "0.8")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("DAILY_EXPORT_CRON", "0 0 0 * * *")
	v.SetDefault("DEFAULTER_SWEEP_CRON", "0 0 9 * * MON")
	v.SetDefault("INSTITUTION_NAME", "Basaveshwar Engineering College (BEC)")
	v.SetDefault("REPORTS_DIR", "./reports")
	v.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Backend.URL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}

	if c.Gateway.Currency == "" {
		return fmt.Errorf("CURRENCY is required")
	}

	if c.Gateway.DueDate != "" {
		if _, err := time.Parse("2006-01-02", c.Gateway.DueDate); err != nil {
			return fmt.Errorf("FEE_DUE_DATE must be YYYY-MM-DD: %w", err)
		}
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.IsProduction() && c.Auth.JWTSecret == developmentSecret {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}

	// Validate demo success rate
	rate, err := decimal.NewFromString(c.Mode.DemoSuccessRate)
	if err != nil {
		return fmt.Errorf("DEMO_SUCCESS_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("DEMO_SUCCESS_RATE must be between 0 and 1")
	}

	// Zero keeps open attempts until they are verified.
	orderTTL, err := time.ParseDuration(c.Redis.OrderTTL)
	if err != nil {
		return fmt.Errorf("ORDER_TTL must be a valid duration: %w", err)
	}
	if orderTTL < 0 {
		return fmt.Errorf("ORDER_TTL must not be negative")
	}

	durations := map[string]string{
		"BACKEND_TIMEOUT":      c.Backend.Timeout,
		"JWT_TTL":              c.Auth.TokenTTL,
		"HEALTH_CHECK_TIMEOUT": c.Health.Timeout,
	}
	for key, value := range durations {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s must be a valid duration: %w", key, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s must be greater than 0", key)
		}
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDemoSuccessRate returns the offline demo success probability
func (c *Config) GetDemoSuccessRate() float64 {
	rate, _ := decimal.NewFromString(c.Mode.DemoSuccessRate)
	return rate.InexactFloat64()
}

// GetBackendTimeout returns the backend request timeout as duration
func (c *Config) GetBackendTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Backend.Timeout)
	return timeout
}

// GetOrderTTL returns how long a pending order stays verifiable. Zero means
// no expiry.
func (c *Config) GetOrderTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Redis.OrderTTL)
	return ttl
}

// GetTokenTTL returns the portal session lifetime
func (c *Config) GetTokenTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Auth.TokenTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetSchedulerLocation returns the scheduler time zone
func (c *Config) GetSchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
