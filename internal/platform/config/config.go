// Package config assembles runtime configuration from the environment so
// main stays lean. Credentials are not read here; they go through the
// secrets resolver, which consults the environment as its last provider.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration for the intake service.
type Config struct {
	Server    Server
	Database  Database
	Redis     Redis
	RateLimit RateLimit
	SMTP      SMTP

	// SecretsDir is the directory of mounted secret files; empty disables
	// the file provider.
	SecretsDir string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string

	// CORSOrigin is the origin allowed to call the API; "*" when unset.
	CORSOrigin string
}

// Database holds the Postgres connection settings. The "database-url" secret,
// when present, takes precedence over this value.
type Database struct {
	URL string
}

// Redis holds the optional Redis connection settings. An empty URL means
// the rate limiter falls back to its in-process store.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimit tunes the submission throttle.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// SMTP holds the outbound mail settings. The password is resolved separately
// as the "smtp-password" secret; empty Addr disables sending entirely.
type SMTP struct {
	Addr string
	From string
	User string
}

// FromEnv builds a Config from environment variables, applying defaults
// where a variable is unset.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:       envOr("INTAKE_ADDR", ":8080"),
			CORSOrigin: envOr("INTAKE_CORS_ORIGIN", "*"),
		},
		Database: Database{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimit{
			Limit:  envInt("RATE_LIMIT_MAX", 5),
			Window: envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		SMTP: SMTP{
			Addr: os.Getenv("SMTP_ADDR"),
			From: envOr("SMTP_FROM", "noreply@supplier-intake.local"),
			User: os.Getenv("SMTP_USER"),
		},
		SecretsDir: os.Getenv("SECRETS_DIR"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
