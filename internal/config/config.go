package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	ContentDir      string        `env:"CONTENT_DIR" envDefault:"content"`
	ContentDB       string        `env:"CONTENT_DB"`
	TransitionLock  time.Duration `env:"TRANSITION_LOCK" envDefault:"600ms"`
	LiveIdleTimeout time.Duration `env:"LIVE_IDLE_TIMEOUT" envDefault:"30m"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
