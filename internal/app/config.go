package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/roadscore/roadscore/internal/dashboard"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	AppRateLimit      int           `envconfig:"APP_RATE_LIMIT" default:"300"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`

	DashboardRotationInterval time.Duration `envconfig:"DASHBOARD_ROTATION_INTERVAL" default:"8s"`
	DashboardRevealDelay      time.Duration `envconfig:"DASHBOARD_REVEAL_DELAY" default:"500ms"`
	DashboardUserScore        int           `envconfig:"DASHBOARD_USER_SCORE" default:"72"`
	DashboardCompanyScore     int           `envconfig:"DASHBOARD_COMPANY_SCORE" default:"68"`
	DashboardIdleTTL          time.Duration `envconfig:"DASHBOARD_IDLE_TTL" default:"30m"`
	DashboardFixtures         string        `envconfig:"DASHBOARD_FIXTURES"`
	DashboardChartCacheTTL    time.Duration `envconfig:"DASHBOARD_CHART_CACHE_TTL" default:"10m"`

	WorkerWarmupCron string `envconfig:"WORKER_WARMUP_CRON" default:"*/10 * * * *"`
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

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("session secret must be provided")
	}
	if strings.TrimSpace(c.CSRFSecret) == "" {
		return errors.New("csrf secret must be provided")
	}
	if err := c.DashboardSettings().Validate(); err != nil {
		return fmt.Errorf("dashboard config: %w", err)
	}
	if c.DashboardIdleTTL <= 0 {
		return fmt.Errorf("dashboard config: %w: idle ttl %s", dashboard.ErrInvalidInterval, c.DashboardIdleTTL)
	}
	if c.DashboardChartCacheTTL <= 0 {
		return fmt.Errorf("dashboard config: %w: chart cache ttl %s", dashboard.ErrInvalidInterval, c.DashboardChartCacheTTL)
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.AppRateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}
	if strings.TrimSpace(c.WorkerWarmupCron) == "" {
		return errors.New("worker warmup cron must be provided")
	}
	return nil
}

// DashboardSettings returns the engine timing and reveal values.
func (c *Config) DashboardSettings() dashboard.Settings {
	return dashboard.Settings{
		RotationInterval: c.DashboardRotationInterval,
		RevealDelay:      c.DashboardRevealDelay,
		UserScore:        c.DashboardUserScore,
		CompanyScore:     c.DashboardCompanyScore,
	}
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
