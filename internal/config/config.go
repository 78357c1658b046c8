package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"VTCAL_HOST" envDefault:"127.0.0.1"`
	ServerPort string `env:"VTCAL_PORT" envDefault:"3001"`

	// DatabasePath is the sqlite file holding all persisted state.
	DatabasePath string `env:"VTCAL_DATABASE" envDefault:"calendar.db"`

	RedisAddr string `env:"VTCAL_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"VTCAL_REDIS_DB" envDefault:"0"`
	RedisPass string `env:"VTCAL_REDIS_PASSWORD"`

	CanvasBaseURL string `env:"VTCAL_CANVAS_URL" envDefault:"https://canvas.vt.edu"`
	GoogleBaseURL string `env:"VTCAL_GOOGLE_URL" envDefault:"https://www.googleapis.com/calendar/v3"`

	// TwoFactorDevBypass accepts the fixed code 000000 for any account.
	// Development only; must stay off in any real deployment.
	TwoFactorDevBypass bool `env:"VTCAL_2FA_DEV_BYPASS" envDefault:"false"`
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal("parse environment", "err", err)
	}
	return cfg
}
