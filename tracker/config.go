package tracker

import (
	"fmt"
	"time"

	"github.com/andyle182810/gtracker/validator"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultHost    = "www.pivotaltracker.com"
	APIPath        = "/services/v2"
	DefaultTimeout = 30 * time.Second

	HeaderTrackerToken = "X-TrackerToken"
)

type Config struct {
	APIToken  string        `env:"TRACKER_API_TOKEN"  validate:"required"`
	UseSSL    bool          `env:"TRACKER_USE_SSL"    envDefault:"false"`
	Timeout   time.Duration `env:"TRACKER_TIMEOUT"    envDefault:"30s"     validate:"gte=0"`
	LogLevel  string        `env:"TRACKER_LOG_LEVEL"  envDefault:"info"    validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string        `env:"TRACKER_LOG_FORMAT" envDefault:"console" validate:"omitempty,oneof=console json"`
}

// LoadConfig reads and validates the TRACKER_* environment variables.
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Validate(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// BaseURL is the API root, https only when UseSSL is set.
func (c Config) BaseURL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return scheme + "://" + DefaultHost + APIPath
}
