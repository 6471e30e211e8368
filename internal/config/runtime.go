package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultListenAddr    = ":8080"
	defaultMinSlotGap    = "30m"
	defaultNoShowGrace   = "15m"
	defaultSweepInterval = "5m"
	defaultJWTSecret     = "change-me-jwt-secret"
)

type RuntimeConfig struct {
	DatabaseURL   string
	JWTSecret     string
	ListenAddr    string
	MinSlotGap    time.Duration
	NoShowGrace   time.Duration
	SweepInterval time.Duration
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		ListenAddr:  getEnv("LISTEN_ADDR", defaultListenAddr),
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if cfg.MinSlotGap, err = getDuration("MIN_SLOT_GAP", defaultMinSlotGap); err != nil {
		return nil, err
	}
	if cfg.NoShowGrace, err = getDuration("NO_SHOW_GRACE", defaultNoShowGrace); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = getDuration("NO_SHOW_SWEEP_INTERVAL", defaultSweepInterval); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
