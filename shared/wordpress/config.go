package wordpress

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBaseURL   = "https://balkangamehub.com/"
	defaultTimeout   = 15 * time.Second
	defaultRateLimit = 5
	defaultBurst     = 5
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit is the sustained request rate per second; zero disables pacing.
	RateLimit float64
	Burst     int
}

// NewConfig reads WORDPRESS_BASE_URL, WORDPRESS_TIMEOUT, WORDPRESS_RATE_LIMIT
// and WORDPRESS_BURST, falling back to defaults for unset or invalid values.
func NewConfig() *Config {
	cfg := &Config{
		BaseURL:   defaultBaseURL,
		Timeout:   defaultTimeout,
		RateLimit: defaultRateLimit,
		Burst:     defaultBurst,
	}

	if v := os.Getenv("WORDPRESS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}

	if v := os.Getenv("WORDPRESS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			log.Warn().Str("value", v).Msg("Ignoring invalid WORDPRESS_TIMEOUT")
		}
	}

	if v := os.Getenv("WORDPRESS_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.RateLimit = f
		} else {
			log.Warn().Str("value", v).Msg("Ignoring invalid WORDPRESS_RATE_LIMIT")
		}
	}

	if v := os.Getenv("WORDPRESS_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Burst = n
		} else {
			log.Warn().Str("value", v).Msg("Ignoring invalid WORDPRESS_BURST")
		}
	}

	return cfg
}
