package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session providers accepted by SESSION_PROVIDER.
const (
	ProviderLoginApp = "oftrust"
	ProviderKratos   = "kratos"
)

// Config holds the backend proxy configuration
type Config struct {
	Port string

	AppURL         string // where the browser lands after signing in
	RedirectURL    string // OAuth redirect_uri registered for this client
	LoginAppURL    string // authorization page
	LoginAppAPIURL string // token and /me endpoints
	IdentityAPIURL string
	BrokerAPIURL   string

	ClientID          string
	ClientSecret      string
	BrokerAccessToken string // HMAC key for x-pot-signature

	SSLEnabled      bool
	SessionSecret   string // enables signed session cookies
	StateSecret     string // enables the OAuth state parameter
	SessionProvider string
	KratosURL       string

	CacheTTL           time.Duration
	UpstreamTimeout    time.Duration
	SessionTTL         time.Duration // cookie lifetime when the grant has no expires_in
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	ssl, err := getBool("SSL_ENABLED", false)
	if err != nil {
		return nil, err
	}

	scheme := "http"
	if ssl {
		scheme = "https"
	}
	appURL := getEnv("APP_URL", scheme+"://sample-app.local:32600")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		AppURL:             appURL,
		RedirectURL:        getEnv("REDIRECT_URL", strings.TrimRight(appURL, "/")+"/api/exchangeToken"),
		LoginAppURL:        getEnv("LOGIN_APP_URL", "https://login-sandbox.oftrust.net"),
		LoginAppAPIURL:     getEnv("LOGIN_APP_API_URL", "https://login-sandbox.oftrust.net/api"),
		IdentityAPIURL:     getEnv("IDENTITY_API_URL", "https://api-sandbox.oftrust.net/identities/v1"),
		BrokerAPIURL:       getEnv("BROKER_API_URL", "https://api-sandbox.oftrust.net/broker/v1"),
		ClientID:           getEnv("CLIENT_ID", ""),
		ClientSecret:       getEnv("CLIENT_SECRET", ""),
		BrokerAccessToken:  getEnv("BROKER_ACCESS_TOKEN", ""),
		SSLEnabled:         ssl,
		SessionSecret:      getEnv("SESSION_SECRET", ""),
		StateSecret:        getEnv("STATE_SECRET", ""),
		SessionProvider:    strings.ToLower(getEnv("SESSION_PROVIDER", ProviderLoginApp)),
		KratosURL:          getEnv("KRATOS_URL", "http://kratos:4433"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}

	if cfg.CacheTTL, err = getDuration("CACHE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT cannot be empty"))
	}

	for name, value := range map[string]string{
		"APP_URL":           c.AppURL,
		"REDIRECT_URL":      c.RedirectURL,
		"LOGIN_APP_URL":     c.LoginAppURL,
		"LOGIN_APP_API_URL": c.LoginAppAPIURL,
		"IDENTITY_API_URL":  c.IdentityAPIURL,
		"BROKER_API_URL":    c.BrokerAPIURL,
	} {
		if err := validateURL(value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	switch c.SessionProvider {
	case ProviderLoginApp:
	case ProviderKratos:
		if err := validateURL(c.KratosURL); err != nil {
			errs = append(errs, fmt.Errorf("KRATOS_URL: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("SESSION_PROVIDER must be %q or %q", ProviderLoginApp, ProviderKratos))
	}

	if c.SessionSecret != "" && len(c.SessionSecret) < 32 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes"))
	}

	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("CACHE_TTL cannot be negative"))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme in %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// getEnv retrieves an environment variable or returns a fallback value.
// KEY_FILE, when set, names a file holding the value.
func getEnv(key, fallback string) string {
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
