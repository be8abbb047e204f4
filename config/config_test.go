package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "APP_URL", "REDIRECT_URL", "LOGIN_APP_URL", "LOGIN_APP_API_URL",
	"IDENTITY_API_URL", "BROKER_API_URL", "CLIENT_ID", "CLIENT_SECRET",
	"BROKER_ACCESS_TOKEN", "BROKER_ACCESS_TOKEN_FILE", "SSL_ENABLED", "SESSION_SECRET",
	"STATE_SECRET", "SESSION_PROVIDER", "KRATOS_URL", "CACHE_TTL", "UPSTREAM_TIMEOUT",
	"SESSION_TTL", "CORS_ALLOWED_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://sample-app.local:32600", cfg.AppURL)
	assert.Equal(t, "http://sample-app.local:32600/api/exchangeToken", cfg.RedirectURL)
	assert.Equal(t, "https://login-sandbox.oftrust.net", cfg.LoginAppURL)
	assert.Equal(t, "https://login-sandbox.oftrust.net/api", cfg.LoginAppAPIURL)
	assert.Equal(t, "https://api-sandbox.oftrust.net/identities/v1", cfg.IdentityAPIURL)
	assert.Equal(t, "https://api-sandbox.oftrust.net/broker/v1", cfg.BrokerAPIURL)
	assert.Equal(t, ProviderLoginApp, cfg.SessionProvider)
	assert.False(t, cfg.SSLEnabled)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_SSLChangesAppScheme(t *testing.T) {
	clearEnv(t)
	t.Setenv("SSL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.SSLEnabled)
	assert.Equal(t, "https://sample-app.local:32600", cfg.AppURL)
	assert.Equal(t, "https://sample-app.local:32600/api/exchangeToken", cfg.RedirectURL)
}

func TestLoad_Custom(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("APP_URL", "http://localhost:3000/")
	t.Setenv("CACHE_TTL", "10m")
	t.Setenv("SESSION_PROVIDER", "Kratos")
	t.Setenv("KRATOS_URL", "http://custom-kratos:4444")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "http://localhost:3000/api/exchangeToken", cfg.RedirectURL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, ProviderKratos, cfg.SessionProvider)
	assert.Equal(t, "http://custom-kratos:4444", cfg.KratosURL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestLoad_SecretFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "broker-token")
	require.NoError(t, os.WriteFile(path, []byte("  file-secret\n"), 0o600))
	t.Setenv("BROKER_ACCESS_TOKEN", "env-secret")
	t.Setenv("BROKER_ACCESS_TOKEN_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "file-secret", cfg.BrokerAccessToken)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		key, value  string
		errContains string
	}{
		{"invalid cache ttl", "CACHE_TTL", "invalid", "invalid CACHE_TTL format"},
		{"invalid timeout", "UPSTREAM_TIMEOUT", "0s", "UPSTREAM_TIMEOUT must be positive"},
		{"invalid ssl flag", "SSL_ENABLED", "maybe", "invalid SSL_ENABLED format"},
		{"unknown provider", "SESSION_PROVIDER", "ldap", "SESSION_PROVIDER must be"},
		{"weak session secret", "SESSION_SECRET", "short", "SESSION_SECRET must be at least 32 bytes"},
		{"bad broker url", "BROKER_API_URL", "ftp://broker", "BROKER_API_URL"},
		{"relative login url", "LOGIN_APP_URL", "/login", "LOGIN_APP_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
