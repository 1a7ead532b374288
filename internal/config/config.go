package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported generative service providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Provider exposes the configuration values the rest of the application reads.
// Handlers and services depend on this interface so tests can supply fakes.
type Provider interface {
	GetServerAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetAIProvider() string
	GetOpenAIBaseURL() string
	GetGeminiModel() string
	GetAITimeout() time.Duration
	GetPromptsDir() string
	GetRateLimit() int
}

// Config holds all configuration for the application.
type Config struct {
	ServerAddr    string
	AppBaseURL    string
	SessionSecret string

	AIProvider    string
	OpenAIBaseURL string
	GeminiModel   string
	AITimeout     time.Duration

	PromptsDir string
	RateLimit  int
}

// New loads configuration from a .env file, if present, and the environment.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return &Config{
		ServerAddr:    getEnv("FOLIO_ADDR", ":8080"),
		AppBaseURL:    getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret: getEnv("SESSION_SECRET", "folio-development-secret-change-me"),
		AIProvider:    getEnv("FOLIO_AI_PROVIDER", ProviderOpenAI),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeout:     getEnvAsDuration("FOLIO_AI_TIMEOUT", "60s"),
		PromptsDir:    getEnv("FOLIO_PROMPTS_DIR", ""),
		RateLimit:     getEnvAsInt("FOLIO_RATE_LIMIT", 10),
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	switch c.AIProvider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("config error: unknown FOLIO_AI_PROVIDER %q", c.AIProvider)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("config error: FOLIO_AI_TIMEOUT must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("config error: FOLIO_RATE_LIMIT must be positive")
	}
	if c.PromptsDir != "" {
		info, err := os.Stat(c.PromptsDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("config error: prompts directory not found: %s", c.PromptsDir)
		}
	}
	return nil
}

func (c *Config) GetServerAddr() string       { return c.ServerAddr }
func (c *Config) GetAppBaseURL() string       { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string    { return c.SessionSecret }
func (c *Config) GetAIProvider() string       { return c.AIProvider }
func (c *Config) GetOpenAIBaseURL() string    { return c.OpenAIBaseURL }
func (c *Config) GetGeminiModel() string      { return c.GeminiModel }
func (c *Config) GetAITimeout() time.Duration { return c.AITimeout }
func (c *Config) GetPromptsDir() string       { return c.PromptsDir }
func (c *Config) GetRateLimit() int           { return c.RateLimit }

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
