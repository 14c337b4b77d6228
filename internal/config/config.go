// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from the environment, after an optional .env file.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// LogLevel controls the minimum log level: debug, info, warn, or error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// CORSOrigins is the list of allowed cross-origin request origins,
	// read from the comma-separated CORS_ORIGINS. Defaults to the Vite dev server.
	CORSOrigins    []string
	RawCORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	// MaxBodyBytes caps request bodies. Profile pictures and place images
	// arrive inline as data URLs, hence the generous default.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"10485760"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"true"`

	// BcryptCost is the password hashing work factor.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// RedisURL points the rate limiter at a shared Redis. Empty means the
	// limit is enforced per process.
	RedisURL string `env:"REDIS_URL"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Otel      OtelConfig      `envPrefix:"OTEL_"`
}

// RateLimitConfig sets the per-client request budget per minute.
type RateLimitConfig struct {
	Requests int  `env:"REQUESTS" envDefault:"100"`
	Burst    int  `env:"BURST" envDefault:"20"`
	Enabled  bool `env:"ENABLED" envDefault:"true"`
}

// OtelConfig controls OpenTelemetry tracing. Tracing is off unless both
// Enabled and Endpoint are set.
type OtelConfig struct {
	Enabled     bool    `env:"ENABLED" envDefault:"false"`
	Endpoint    string  `env:"ENDPOINT"`
	ServiceName string  `env:"SERVICE_NAME" envDefault:"travel-planner"`
	SampleRate  float64 `env:"SAMPLE_RATE" envDefault:"0.1"`
	Insecure    bool    `env:"INSECURE" envDefault:"true"`
}

// Load reads an optional .env file, then parses environment variables into a Config.
// Variables already set in the environment win over the .env file.
// Returns an error naming any required variable that is missing or empty.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: read .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.CORSOrigins = splitCSV(cfg.RawCORSOrigins)
	return cfg, nil
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
