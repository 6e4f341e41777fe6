package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9090
  base_url: https://headshots.example.com
database:
  host: db.internal
  username: app
  name: headshots
  query_timeout: 3s
stripe:
  products:
    headshotBasic: headshot_basic
  default_product: headshotBasic
storage:
  bucket: headshots
  region: eu-west-1
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600))
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, Test, testYAML)
	t.Setenv("HS_DB_PASSWORD", "from-env")
	t.Setenv("HS_STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("HS_STRIPE_WEBHOOK_SECRET", "whsec_abc")
	t.Setenv("HS_REPLICATE_API_TOKEN", "r8_abc")
	t.Setenv("HS_AUTH_JWT_SECRET", "jwt-secret")
	t.Setenv("HS_POLLING_MAX_ATTEMPTS", "10")

	cfg, err := Load(Test, dir)

	require.NoError(t, err)
	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "read committed", cfg.Database.Isolation)

	assert.Equal(t, "sk_test_abc", cfg.Stripe.SecretKey)
	assert.Equal(t, "whsec_abc", cfg.Stripe.WebhookSecret)
	assert.Equal(t, "r8_abc", cfg.Replicate.APIToken)
	assert.Equal(t, "jwt-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 3, cfg.Storage.UploadAttempts)
	assert.Equal(t, 10*time.Minute, cfg.Generation.ExecutionTimeout)
	assert.Equal(t, 5*time.Second, cfg.Polling.Interval)
	assert.Equal(t, 10, cfg.Polling.MaxAttempts)

	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_WithoutConfigFile(t *testing.T) {
	cfg, err := Load(Test, t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Polling.MaxAttempts)
	assert.Error(t, cfg.Validate())
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := writeConfig(t, Test, "server: [unterminated")

	_, err := Load(Test, dir)

	assert.Error(t, err)
}

func TestValidate_ReportsMissingSecrets(t *testing.T) {
	cfg, err := Load(Test, writeConfig(t, Test, testYAML))
	require.NoError(t, err)

	err = cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stripe.secret_key")
	assert.Contains(t, err.Error(), "replicate.api_token")
}

func TestWarnings_Production(t *testing.T) {
	cfg := &Config{Environment: Production}
	cfg.Database.SSLMode = "disable"
	cfg.Server.BaseURL = "http://headshots.example.com"
	cfg.Stripe.SecretKey = "sk_test_123"

	assert.Len(t, cfg.Warnings(), 3)

	cfg.Environment = Development
	assert.Empty(t, cfg.Warnings())
}

func TestCheckout(t *testing.T) {
	cfg, err := Load(Test, writeConfig(t, Test, testYAML))
	require.NoError(t, err)

	settings := cfg.Checkout()

	assert.Equal(t, "https://headshots.example.com", settings.BaseURL)
	key, ok := settings.LookupKey("")
	assert.True(t, ok)
	assert.Equal(t, "headshot_basic", key)
}
