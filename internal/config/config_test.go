package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8091" {
		t.Errorf("HTTPAddr = %q, want :8091", cfg.HTTPAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
	if cfg.SeedDefaultQuiz {
		t.Error("SeedDefaultQuiz should default to false")
	}
}

func TestLoadGatewayFromEnv(t *testing.T) {
	t.Setenv("QUIZ_API_URL", "http://quiz:9000")
	t.Setenv("QUIZ_API_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("PASS_PERCENT", "75")

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.QuizAPIURL != "http://quiz:9000" {
		t.Errorf("QuizAPIURL = %q", cfg.QuizAPIURL)
	}
	if cfg.QuizAPITimeout != 3*time.Second {
		t.Errorf("QuizAPITimeout = %v, want 3s", cfg.QuizAPITimeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want DEBUG", cfg.LogLevel)
	}
	if cfg.PassPercent != 75 {
		t.Errorf("PassPercent = %v, want 75", cfg.PassPercent)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("SessionTTL = %v, want 2h", cfg.SessionTTL)
	}
}

func TestLoadGatewayRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"pass percent over 100", "PASS_PERCENT", "120"},
		{"zero timeout", "QUIZ_API_TIMEOUT", "0s"},
		{"unparsable timeout", "QUIZ_API_TIMEOUT", "soon"},
		{"sub-second session ttl", "SESSION_TTL", "3ns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadGateway(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
