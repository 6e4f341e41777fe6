package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/amirhossein-jamali/headshot-service/internal/infrastructure/adapter/database"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "HS"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"./configs/.env",
	"../.env",
	"../../.env",
}

// envBindings maps config keys to their short environment variable names.
// Every other key is reachable as HS_<SECTION>_<KEY>.
var envBindings = map[string]string{
	"environment":               "HS_ENV",
	"server.port":               "HS_SERVER_PORT",
	"server.base_url":           "HS_BASE_URL",
	"database.host":             "HS_DB_HOST",
	"database.port":             "HS_DB_PORT",
	"database.username":         "HS_DB_USERNAME",
	"database.password":         "HS_DB_PASSWORD",
	"database.name":             "HS_DB_NAME",
	"database.ssl_mode":         "HS_DB_SSL_MODE",
	"logger.level":              "HS_LOGGER_LEVEL",
	"auth.jwt_secret":           "HS_AUTH_JWT_SECRET",
	"stripe.secret_key":         "HS_STRIPE_SECRET_KEY",
	"stripe.webhook_secret":     "HS_STRIPE_WEBHOOK_SECRET",
	"replicate.api_token":       "HS_REPLICATE_API_TOKEN",
	"storage.access_key_id":     "HS_STORAGE_ACCESS_KEY_ID",
	"storage.secret_access_key": "HS_STORAGE_SECRET_ACCESS_KEY",
}

// LoadConfig loads configuration for the environment named by HS_ENV
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside local development
	_ = loadDotEnvFile()
	return Load(getEnvironment(), ConfigPaths...)
}

// Load reads <env>.yaml from the first matching path and applies
// environment overrides. Without a config file only defaults and the
// environment are used.
func Load(env string, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if config.Environment == "" {
		config.Environment = env
	}

	return &config, nil
}

// loadDotEnvFile loads the first .env file found
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return errors.New("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "30s")

	for key, value := range databaseDefaults() {
		v.SetDefault("database."+key, value)
	}

	v.SetDefault("logger.level", "info")

	v.SetDefault("auth.issuer", "headshot-service")
	v.SetDefault("auth.token_ttl", "24h")

	v.SetDefault("stripe.max_network_retries", 2)
	v.SetDefault("stripe.products", map[string]string{"headshotBasic": "headshot_basic"})
	v.SetDefault("stripe.default_product", "headshotBasic")

	v.SetDefault("replicate.model", "flux-kontext-apps/professional-headshot")
	v.SetDefault("replicate.aspect_ratio", "1:1")

	v.SetDefault("storage.upload_attempts", 3)
	v.SetDefault("storage.retry_delay", "500ms")
	v.SetDefault("storage.download_timeout", "60s")

	v.SetDefault("generation.execution_timeout", "10m")

	v.SetDefault("polling.interval", "5s")
	v.SetDefault("polling.max_attempts", 24)
	v.SetDefault("polling.api_base_url", "http://localhost:8080")
	v.SetDefault("polling.timeout", "10s")
}

// databaseDefaults registers every database key with viper so environment
// overrides reach keys the config file leaves out
func databaseDefaults() map[string]any {
	d := database.DefaultConfig()
	return map[string]any{
		"host":               d.Host,
		"port":               d.Port,
		"username":           d.Username,
		"password":           d.Password,
		"name":               d.Database,
		"ssl_mode":           d.SSLMode,
		"max_open_conns":     d.MaxOpenConns,
		"max_idle_conns":     d.MaxIdleConns,
		"conn_max_lifetime":  d.ConnMaxLifetime,
		"conn_max_idle_time": d.ConnMaxIdleTime,
		"query_timeout":      d.QueryTimeout,
		"slow_threshold":     d.SlowThreshold,
		"isolation":          d.Isolation,
		"log_level":          d.LogLevel,
		"retry_attempts":     d.RetryAttempts,
		"retry_delay":        d.RetryDelay,
		"auto_migrate":       d.AutoMigrate,
	}
}

// getEnvironment determines the environment from HS_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv("HS_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}
