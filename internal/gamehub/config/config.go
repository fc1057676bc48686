package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port int `env:"GAMEHUB_PORT" envDefault:"3000"`

	// DatabaseURL is a postgres:// URL or a SQLite file path.
	DatabaseURL    string `env:"DATABASE_URL" envDefault:"games.db"`
	SeedSampleData bool   `env:"SEED_SAMPLE_DATA" envDefault:"true"`

	NatsURL   string `env:"NATS_URL"`
	NatsToken string `env:"NATS_TOKEN"`

	// RateLimit is requests per minute per client IP, 0 disables it.
	RateLimit int `env:"RATE_LIMIT" envDefault:"0"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"LOG_DIR"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimit < 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT value: %d", cfg.RateLimit)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
