package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	customError "github.com/auroramotors/rental-billing/pkg/errors"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Xero      XeroConfig      `mapstructure:"xero"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"DATABASE_URL"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type XeroConfig struct {
	ClientID     string `mapstructure:"XERO_CLIENT_ID"`
	ClientSecret string `mapstructure:"XERO_CLIENT_SECRET"`
	RedirectURI  string `mapstructure:"XERO_REDIRECT_URI"`
	TenantID     string `mapstructure:"XERO_TENANT_ID"`
	RefreshToken string `mapstructure:"XERO_REFRESH_TOKEN"`
	BrandName    string `mapstructure:"XERO_BRAND_NAME"`
	AccountCode  string `mapstructure:"XERO_SALES_ACCOUNT_CODE"`
	Scopes       string `mapstructure:"XERO_SCOPES"`
}

type SchedulerConfig struct {
	CronSpec string `mapstructure:"SCHEDULER_CRON"`
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("XERO_REDIRECT_URI", "http://localhost:8080/api/v1/xero/callback")
	viper.SetDefault("XERO_BRAND_NAME", "Aurora Motors")
	viper.SetDefault("XERO_SALES_ACCOUNT_CODE", "200")
	viper.SetDefault("XERO_SCOPES", "offline_access accounting.transactions accounting.contacts accounting.settings email")
	viper.SetDefault("SCHEDULER_CRON", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Australia/Sydney")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid. Xero credentials are
// deliberately not required here; their presence is checked per call chain
// so the service can boot before the Xero connection is set up.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// ValidateCredentials verifies the Xero client configuration is present.
// Call chains that talk to Xero short-circuit on this before any request.
func (x *XeroConfig) ValidateCredentials() error {
	if x.ClientID == "" {
		return customError.WrapMissingCredentials("XERO_CLIENT_ID")
	}
	if x.ClientSecret == "" {
		return customError.WrapMissingCredentials("XERO_CLIENT_SECRET")
	}
	if x.RedirectURI == "" {
		return customError.WrapMissingCredentials("XERO_REDIRECT_URI")
	}
	return nil
}

// ScopeList returns the configured OAuth scopes as a slice.
func (x *XeroConfig) ScopeList() []string {
	return strings.Fields(x.Scopes)
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
