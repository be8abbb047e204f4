package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ClientConfig configures the sample-app command line client.
type ClientConfig struct {
	// BackendURL is the single place the backend base URL is set.
	BackendURL  string `mapstructure:"backend_url"`
	Session     string `mapstructure:"session"`
	ProductCode string `mapstructure:"product_code"`
	// Parameters are key=value pairs. Viper lowercases map keys, so a YAML
	// mapping would lose the casing the broker expects.
	Parameters []string      `mapstructure:"parameters"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Logging    LoggingConfig `mapstructure:"logging"`
	Output     OutputConfig  `mapstructure:"output"`
}

// ProductParameters parses Parameters. It returns nil when none are set.
func (c *ClientConfig) ProductParameters() (map[string]any, error) {
	if len(c.Parameters) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(c.Parameters))
	for _, pair := range c.Parameters {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// LoadClient reads the client configuration from cfgFile (or .sample-app.yaml
// in the working directory and $HOME/.config/sample-app) and SAMPLE_APP_*
// environment variables.
func LoadClient(cfgFile string) (*ClientConfig, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".sample-app")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/sample-app")
	}

	v.SetEnvPrefix("SAMPLE_APP")
	v.AutomaticEnv()
	// nested keys have no automatic env mapping
	_ = v.BindEnv("logging.level", "SAMPLE_APP_LOGGING_LEVEL")
	_ = v.BindEnv("output.colors", "SAMPLE_APP_OUTPUT_COLORS")

	setClientDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validateClient(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setClientDefaults(v *viper.Viper) {
	v.SetDefault("backend_url", "http://localhost:8080")
	v.SetDefault("product_code", "prh-business-identity-data-product")
	v.SetDefault("timeout", 15*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("output.colors", true)
}

func validateClient(cfg *ClientConfig) error {
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend_url: %q", cfg.BackendURL)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (must be debug, info, warn, or error)", cfg.Logging.Level)
	}

	if cfg.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if cfg.ProductCode == "" {
		return errors.New("product_code cannot be empty")
	}
	if _, err := cfg.ProductParameters(); err != nil {
		return err
	}

	return nil
}
