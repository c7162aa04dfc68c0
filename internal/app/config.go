package app

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`

	CurrencyCode         string  `envconfig:"CURRENCY_CODE" default:"THB"`
	CurrencyLocale       string  `envconfig:"CURRENCY_LOCALE" default:"th"`
	DefaultVATPercentage float64 `envconfig:"DEFAULT_VAT_PERCENTAGE" default:"7"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"true"`

	// TestMode makes serve return after loading config, before binding a port.
	TestMode bool `envconfig:"APP_TEST_MODE" default:"false"`
}

// LoadDotEnv loads the given .env files (".env" when none are given) into the
// process environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
	}
	return nil
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express as tags.
func (c *Config) Validate() error {
	if c.DefaultVATPercentage < 0 || c.DefaultVATPercentage > 100 {
		return fmt.Errorf("%w: DEFAULT_VAT_PERCENTAGE must be within 0..100, got %v", ErrInvalidConfig, c.DefaultVATPercentage)
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("%w: RATE_LIMIT_PER_MINUTE must not be negative", ErrInvalidConfig)
	}
	if len(c.CurrencyCode) != 3 {
		return fmt.Errorf("%w: CURRENCY_CODE must be a 3 letter ISO code, got %q", ErrInvalidConfig, c.CurrencyCode)
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
