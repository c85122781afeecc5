package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const DefaultModelsURL = "https://raw.githubusercontent.com/hummbl-dev/hummbl-research/main/validation/enhanced-models-context.json"

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Redis    RedisConfig
	Warmer   WarmerConfig
	App      AppConfig
}

type ServerConfig struct {
	Port string
}

type UpstreamConfig struct {
	ModelsURL    string
	FetchTimeout time.Duration
}

type RedisConfig struct {
	URL string
}

// Enabled reports whether refresh events should be published.
func (r RedisConfig) Enabled() bool {
	return r.URL != ""
}

type WarmerConfig struct {
	Schedule string
}

type AppConfig struct {
	ServiceName string
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Upstream: UpstreamConfig{
			ModelsURL:    getEnv("MODELS_URL", DefaultModelsURL),
			FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Warmer: WarmerConfig{
			Schedule: getEnvAllowEmpty("WARM_SCHEDULE", "0 */30 * * * *"),
		},
		App: AppConfig{
			ServiceName: getEnv("SERVICE_NAME", "models-api"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Upstream.ModelsURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("MODELS_URL must be an absolute URL, got %q", c.Upstream.ModelsURL)
	}

	if c.Upstream.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}

	if c.Warmer.Schedule != "" {
		parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(c.Warmer.Schedule); err != nil {
			return fmt.Errorf("WARM_SCHEDULE is invalid: %w", err)
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one set to "",
// so a schedule can be switched off explicitly.
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}
