package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/shipits/recap/core/db"
)

type Config struct {
	OTel    OTelConfig
	Redis   RedisConfig
	LLM     LLMConfig
	Summary SummaryConfig
	Env     string
	Port    string
	DB      db.Config
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type RedisConfig struct {
	URL    string
	Stream string
}

type LLMConfig struct {
	Provider   string // "openai", "azure" or "anthropic"
	APIKey     string
	BaseURL    string // Optional for openai; the resource endpoint on azure
	Model      string // Model name, or the deployment name on azure
	APIVersion string // azure only
	MaxTokens  int
}

type SummaryConfig struct {
	MaxLength       int
	GenerateTimeout time.Duration
}

// Load loads configuration from environment variables.
// In development it also reads a local .env file when present.
func Load() (Config, error) {
	if getEnv("RECAP_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:  getEnv("RECAP_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		DB: db.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "shipits-forum"),
			MaxPoolSize:    uint64(getEnvInt("MONGODB_MAX_POOL_SIZE", 20)),
			ConnectTimeout: time.Duration(getEnvInt("MONGODB_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "recap"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Redis: RedisConfig{
			URL:    getEnv("REDIS_URL", ""),
			Stream: getEnv("REDIS_STREAM", "recap_events"),
		},
		LLM: LLMConfig{
			Provider:   getEnv("LLM_PROVIDER", "openai"),
			APIKey:     getEnv("LLM_API_KEY", ""),
			BaseURL:    getEnv("LLM_BASE_URL", ""),
			Model:      getEnv("LLM_MODEL", ""),
			APIVersion: getEnv("LLM_API_VERSION", ""),
			MaxTokens:  getEnvInt("LLM_MAX_TOKENS", 800),
		},
		Summary: SummaryConfig{
			MaxLength:       getEnvInt("SUMMARY_MAX_LENGTH", 2000),
			GenerateTimeout: time.Duration(getEnvInt("SUMMARY_GENERATE_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}

	if cfg.LLM.APIKey != "" {
		switch cfg.LLM.Provider {
		case "openai", "azure", "anthropic":
		default:
			return Config{}, fmt.Errorf("LLM_PROVIDER must be openai, azure or anthropic, got %q", cfg.LLM.Provider)
		}
		if cfg.LLM.Provider == "azure" && cfg.LLM.BaseURL == "" {
			return Config{}, fmt.Errorf("LLM_BASE_URL is required for the azure provider")
		}
	}

	if cfg.Redis.URL != "" && cfg.Redis.Stream == "" {
		return Config{}, fmt.Errorf("REDIS_STREAM must not be empty when REDIS_URL is set")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

func (c LLMConfig) Enabled() bool {
	if c.Provider == "azure" {
		return c.APIKey != "" && c.BaseURL != ""
	}
	return c.APIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}
