package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingServiceConfig = errors.New("SUPABASE_URL and SUPABASE_ANON_KEY are required")

type Database struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

type Config struct {
	AppEnv string
	Port   string

	// Hosted data/auth service.
	ServiceURL string
	PublicKey  string
	JWTSecret  string

	DB Database

	RedisAddr     string
	RedisPassword string
	KafkaBroker   string

	SessionCookie   string
	SessionCacheTTL time.Duration
	ConnectRetries  int
}

// Load reads the environment (callers run godotenv.Load first). The service
// URL and public key are mandatory; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		AppEnv:     envOrDefault("APP_ENV", "development"),
		Port:       envOrDefault("PORT", "3000"),
		ServiceURL: strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		PublicKey:  strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		JWTSecret:  strings.TrimSpace(os.Getenv("SUPABASE_JWT_SECRET")),
		DB: Database{
			Host:     envOrDefault("DB_HOST", "localhost"),
			User:     envOrDefault("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     envOrDefault("DB_NAME", "postgres"),
			Port:     envOrDefault("DB_PORT", "5432"),
			SSLMode:  envOrDefault("DB_SSLMODE", "require"),
		},
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KafkaBroker:     strings.TrimSpace(os.Getenv("KAFKA_BROKER")),
		SessionCookie:   envOrDefault("SESSION_COOKIE_NAME", "hrms_session"),
		SessionCacheTTL: envDuration("SESSION_CACHE_TTL", time.Minute),
		ConnectRetries:  envInt("CONNECT_RETRIES", 5),
	}

	if cfg.ServiceURL == "" || cfg.PublicKey == "" {
		return cfg, ErrMissingServiceConfig
	}
	if !strings.HasPrefix(cfg.ServiceURL, "http://") && !strings.HasPrefix(cfg.ServiceURL, "https://") {
		return cfg, fmt.Errorf("SUPABASE_URL must be an http(s) url, got %q", cfg.ServiceURL)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func envOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func envDuration(name string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(name)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
