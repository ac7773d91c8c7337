package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Audit worker pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	// External data providers
	FootballAPIURL    string
	FootballAPIKey    string
	WeatherAPIURL     string
	WeatherAPIKey     string
	NewsAPIURL        string
	NewsAPIKey        string
	Season            int
	ProviderTimeout   time.Duration
	ProviderRateLimit int
	ProviderRetryTime time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 1000),
		BatchSize:     getEnvInt("BATCH_SIZE", 100),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 2*time.Second),

		FootballAPIURL: getEnv("FOOTBALL_API_URL", "https://v3.football.api-sports.io"),
		FootballAPIKey: getEnv("FOOTBALL_API_KEY", ""),
		WeatherAPIURL:  getEnv("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5"),
		WeatherAPIKey:  getEnv("WEATHER_API_KEY", ""),
		NewsAPIURL:     getEnv("NEWS_API_URL", "https://newsapi.org/v2"),
		NewsAPIKey:     getEnv("NEWS_API_KEY", ""),

		Season:            getEnvInt("SEASON", time.Now().Year()),
		ProviderTimeout:   getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
		ProviderRateLimit: getEnvInt("PROVIDER_RATE_LIMIT", 5),
		ProviderRetryTime: getEnvDuration("PROVIDER_RETRY_TIME", 15*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
