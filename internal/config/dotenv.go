package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port             string        `env:"PORT"`
	Env              string        `env:"ENV"`
	LogLevel         string        `env:"LOG_LEVEL"`
	ResetDelay       time.Duration `env:"RESET_DELAY"`
	SessionTTL       time.Duration `env:"SESSION_TTL"`
	SweepInterval    time.Duration `env:"SESSION_SWEEP_INTERVAL"`
	SubmitRatePerSec float64       `env:"SUBMIT_RATE_PER_SEC"`
	SubmitBurst      int           `env:"SUBMIT_BURST"`
	WSWriteTimeout   time.Duration `env:"WS_WRITE_TIMEOUT"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		Env:              "dev",
		LogLevel:         "info",
		ResetDelay:       2 * time.Second,
		SessionTTL:       2 * time.Hour,
		SweepInterval:    5 * time.Minute,
		SubmitRatePerSec: 2,
		SubmitBurst:      10,
		WSWriteTimeout:   5 * time.Second,
	}
}

// Load parses the process environment on top of the defaults and rejects
// values the server cannot run with.
func Load() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ResetDelay <= 0 {
		return fmt.Errorf("RESET_DELAY must be positive, got %s", c.ResetDelay)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}
	if c.SubmitRatePerSec <= 0 || c.SubmitBurst <= 0 {
		return fmt.Errorf("submit rate limit must be positive, got %v/%d", c.SubmitRatePerSec, c.SubmitBurst)
	}
	if c.WSWriteTimeout <= 0 {
		return fmt.Errorf("WS_WRITE_TIMEOUT must be positive, got %s", c.WSWriteTimeout)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) IsProd() bool {
	return c.Env == "prod"
}
