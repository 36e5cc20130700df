package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const defaultJWTSecret = "dev-secret-change-in-production"

type Config struct {
	Port        string
	Env         string
	StoreDriver string
	StoreDSN    string
	JWTSecret   string
	JWTExpiry   time.Duration
	// Latency delays signup, login and profile updates.
	Latency     time.Duration
	DeleteGrace time.Duration
	AuthRPS     float64
	AuthBurst   int
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		StoreDriver: getEnv("STORE_DRIVER", "sqlite3"),
		StoreDSN:    getEnv("STORE_DSN", "data/taskdesk.db"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:   getDuration("JWT_EXPIRY", 24*time.Hour),
		Latency:     getDuration("SIMULATED_LATENCY", 0),
		DeleteGrace: getDuration("DELETE_GRACE", 300*time.Millisecond),
		AuthRPS:     getFloat("AUTH_RPS", 5),
		AuthBurst:   getInt("AUTH_BURST", 10),
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return f
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid number, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}
