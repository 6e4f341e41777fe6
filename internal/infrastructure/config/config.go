package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/usecase/fulfillment"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/auth"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/inference"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/payment"
	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/storage"
)

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	Server      ServerConfig     `mapstructure:"server"`
	Database    database.Config  `mapstructure:"database"`
	Logger      LoggerConfig     `mapstructure:"logger"`
	Auth        auth.Config      `mapstructure:"auth"`
	Stripe      StripeConfig     `mapstructure:"stripe"`
	Replicate   inference.Config `mapstructure:"replicate"`
	Storage     storage.Config   `mapstructure:"storage"`
	Generation  GenerationConfig `mapstructure:"generation"`
	Polling     PollingConfig    `mapstructure:"polling"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// StripeConfig contains the payment provider credentials and catalogue
type StripeConfig struct {
	payment.Config `mapstructure:",squash"`

	Products       map[string]string `mapstructure:"products"` // product name to price lookup key
	DefaultProduct string            `mapstructure:"default_product"`
}

// GenerationConfig controls background execution
type GenerationConfig struct {
	ExecutionTimeout time.Duration `mapstructure:"execution_timeout"`
}

// PollingConfig controls the polling client
type PollingConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	APIBaseURL  string        `mapstructure:"api_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Checkout returns the checkout settings for the configured catalogue
func (c *Config) Checkout() fulfillment.CheckoutSettings {
	settings := fulfillment.DefaultCheckoutSettings(c.Server.BaseURL)
	if len(c.Stripe.Products) > 0 {
		settings.Products = c.Stripe.Products
	}
	if c.Stripe.DefaultProduct != "" {
		settings.DefaultProduct = c.Stripe.DefaultProduct
	}
	return settings
}

// IsProduction reports whether the production environment is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Validate checks the settings the API server needs to start
func (c *Config) Validate() error {
	var missing []string

	if c.Server.Port <= 0 {
		missing = append(missing, "server.port")
	}
	if c.Server.BaseURL == "" {
		missing = append(missing, "server.base_url")
	}
	if c.Server.ShutdownTimeout <= 0 {
		missing = append(missing, "server.shutdown_timeout")
	}
	if c.Stripe.SecretKey == "" {
		missing = append(missing, "stripe.secret_key (or HS_STRIPE_SECRET_KEY)")
	}
	if c.Stripe.WebhookSecret == "" {
		missing = append(missing, "stripe.webhook_secret (or HS_STRIPE_WEBHOOK_SECRET)")
	}
	if c.Replicate.APIToken == "" {
		missing = append(missing, "replicate.api_token (or HS_REPLICATE_API_TOKEN)")
	}
	if c.Generation.ExecutionTimeout <= 0 {
		missing = append(missing, "generation.execution_timeout")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configurations: %v", missing)
	}

	if _, ok := c.Checkout().LookupKey(""); !ok {
		return fmt.Errorf("stripe.default_product %q is not in stripe.products", c.Stripe.DefaultProduct)
	}

	var errs []error
	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("auth: %w", err))
	}
	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("storage: %w", err))
	}
	return errors.Join(errs...)
}

// Warnings lists settings that are valid but unsafe in production
func (c *Config) Warnings() []string {
	if !c.IsProduction() {
		return nil
	}

	var warnings []string
	switch strings.ToLower(c.Database.SSLMode) {
	case "require", "verify-ca", "verify-full":
	default:
		warnings = append(warnings, "database.ssl_mode should be 'require', 'verify-ca', or 'verify-full' in production")
	}
	if !strings.HasPrefix(c.Server.BaseURL, "https://") {
		warnings = append(warnings, "server.base_url should use https in production")
	}
	if strings.HasPrefix(c.Stripe.SecretKey, "sk_test_") {
		warnings = append(warnings, "stripe.secret_key is a test mode key")
	}
	return warnings
}
