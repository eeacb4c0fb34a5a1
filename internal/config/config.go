// internal/config/config.go
//
// Environment-driven configuration. main loads .env first (godotenv), then
// everything comes from the process environment with sane dev defaults.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	HTTPAddr       string `env:"HTTP_ADDR" envDefault:":5175"`
	DBPath         string `env:"DB_PATH" envDefault:"data/sanagrid.db"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"sanagrid_token"`
	WordsDir       string `env:"WORDS_DIR"` // empty = embedded lists
	AppEnv         string `env:"APP_ENV" envDefault:"development"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Production reports whether cookies should carry production attributes
// (Secure, SameSite=None).
func (c *Config) Production() bool { return c.AppEnv == "production" }

// Level parses the configured zerolog level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
