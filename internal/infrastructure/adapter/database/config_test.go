package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Host = "localhost"
	cfg.Username = "headshots"
	cfg.Password = "secret"
	cfg.Database = "headshots"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing host", func(c *Config) { c.Host = "" }, "database host is required"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "invalid port number"},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "sometimes" }, "invalid SSL mode"},
		{"no attempts", func(c *Config) { c.RetryAttempts = 0 }, "retry attempts must be at least 1"},
		{"bad isolation", func(c *Config) { c.Isolation = "read uncommitted" }, "invalid isolation level"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_IsolationStatement(t *testing.T) {
	cfg := validConfig()

	stmt, err := cfg.IsolationStatement()
	require.NoError(t, err)
	assert.Equal(t, "SET TRANSACTION ISOLATION LEVEL READ COMMITTED", stmt)

	cfg.Isolation = "Serializable"
	stmt, err = cfg.IsolationStatement()
	require.NoError(t, err)
	assert.Equal(t, "SET TRANSACTION ISOLATION LEVEL SERIALIZABLE", stmt)

	cfg.Isolation = ""
	stmt, err = cfg.IsolationStatement()
	require.NoError(t, err)
	assert.Empty(t, stmt)
}

func TestConfig_DSN(t *testing.T) {
	assert.Equal(t,
		"host=localhost port=5432 user=headshots password=secret dbname=headshots sslmode=disable",
		validConfig().DSN())
}
