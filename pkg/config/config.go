package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ridefinderz-filters/pkg/enums"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Filters FiltersConfig
	PubSub  PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c *Config) Validate() error {
	var errs error
	if c.Filters.MaxPrice <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvFiltersMaxPrice))
	}
	if c.Filters.PriceGap < 0 || c.Filters.PriceGap > c.Filters.MaxPrice {
		errs = multierr.Append(errs, fmt.Errorf("%s must be within [0, %s]", EnvFiltersPriceGap, EnvFiltersMaxPrice))
	}
	if c.Filters.SessionTTL <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", EnvFiltersSessionTTL))
	}
	if _, err := enums.ParseCurrency(c.Filters.Currency); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", EnvFiltersCurrency, err))
	}
	switch strings.ToLower(c.App.LogFormat) {
	case "", "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("%s must be json or console", EnvLogFmt))
	}
	if c.PubSub.Enabled {
		if strings.TrimSpace(c.PubSub.ProjectID) == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s is required when pubsub is enabled", EnvPubSubProjectID))
		}
		if strings.TrimSpace(c.PubSub.FilterEventsTopic) == "" {
			errs = multierr.Append(errs, errors.New("pubsub filter events topic is required when pubsub is enabled"))
		}
	}
	return errs
}

type AppConfig struct {
	Env          string   `envconfig:"RIDEFINDERZ_APP_ENV" required:"true"`
	Port         string   `envconfig:"RIDEFINDERZ_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"RIDEFINDERZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"RIDEFINDERZ_LOG_WARN_STACK" default:"false"`
	LogFormat    string   `envconfig:"RIDEFINDERZ_LOG_FORMAT" default:"json"`
	CORSOrigins  []string `envconfig:"RIDEFINDERZ_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"RIDEFINDERZ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RIDEFINDERZ_REDIS_ADDR"`
	Password     string        `envconfig:"RIDEFINDERZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"RIDEFINDERZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RIDEFINDERZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RIDEFINDERZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RIDEFINDERZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RIDEFINDERZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RIDEFINDERZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// FiltersConfig bounds the price facet and the lifetime of hosted widget sessions.
type FiltersConfig struct {
	MaxPrice      int64         `envconfig:"RIDEFINDERZ_FILTERS_MAX_PRICE" default:"5000000"`
	PriceGap      int64         `envconfig:"RIDEFINDERZ_FILTERS_PRICE_GAP" default:"10000"`
	SessionTTL    time.Duration `envconfig:"RIDEFINDERZ_FILTERS_SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"RIDEFINDERZ_FILTERS_SWEEP_INTERVAL" default:"1m"`
	Currency      string        `envconfig:"RIDEFINDERZ_FILTERS_CURRENCY" default:"INR"`
}

type PubSubConfig struct {
	Enabled           bool   `envconfig:"RIDEFINDERZ_PUBSUB_ENABLED" default:"false"`
	ProjectID         string `envconfig:"RIDEFINDERZ_GCP_PROJECT_ID"`
	FilterEventsTopic string `envconfig:"RIDEFINDERZ_PUBSUB_FILTER_EVENTS_TOPIC" default:"rf-filter-events"`
}
