package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server configures the reference quiz service.
type Server struct {
	HTTPAddr        string     `env:"HTTP_ADDR" envDefault:":8091"`
	DBPath          string     `env:"DB_PATH" envDefault:"data/quizmaster.db"`
	LogLevel        slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SeedDefaultQuiz bool       `env:"SEED_DEFAULT_QUIZ" envDefault:"false"`
}

// Gateway configures the session gateway.
type Gateway struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	QuizAPIURL     string        `env:"QUIZ_API_URL" envDefault:"http://localhost:8091"`
	QuizAPITimeout time.Duration `env:"QUIZ_API_TIMEOUT" envDefault:"10s"`
	LogLevel       slog.Level    `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir         string        `env:"SPA_DIR" envDefault:"web"`
	PassPercent    float64       `env:"PASS_PERCENT" envDefault:"60"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"2h"`
}

func LoadServer() (*Server, error) {
	cfg, err := env.ParseAs[Server]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

func LoadGateway() (*Gateway, error) {
	cfg, err := env.ParseAs[Gateway]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.PassPercent < 0 || cfg.PassPercent > 100 {
		return nil, fmt.Errorf("PASS_PERCENT must be within 0..100, got %v", cfg.PassPercent)
	}
	if cfg.QuizAPITimeout <= 0 {
		return nil, fmt.Errorf("QUIZ_API_TIMEOUT must be positive, got %v", cfg.QuizAPITimeout)
	}
	if cfg.SessionTTL > 0 && cfg.SessionTTL < time.Second {
		return nil, fmt.Errorf("SESSION_TTL must be 0 or at least 1s, got %v", cfg.SessionTTL)
	}
	return &cfg, nil
}
