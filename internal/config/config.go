// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Completion provider identifiers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration.
type Config struct {
	Port          string
	FrontendURL   string
	DBPath        string
	AuthJWTSecret string
	Completion    CompletionConfig
	RateLimit     RateLimitConfig
	JournalLog    JournalLogConfig

	// MaxRequestBodySize bounds JSON request bodies in bytes.
	MaxRequestBodySize int64
}

// CompletionConfig selects and configures the completion provider.
type CompletionConfig struct {
	Provider     string // "openai" or "gemini"
	OpenAIAPIKey string
	OpenAIBase   string // optional, for OpenAI-compatible open-weights hosts
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// RateLimitConfig throttles completion requests per user.
type RateLimitConfig struct {
	RequestsPerWindow int
	WindowDuration    time.Duration
}

// JournalLogConfig controls NDJSON conversation logging.
type JournalLogConfig struct {
	Enabled   bool
	Dir       string
	QueueSize int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	queueSize := getEnvInt("JOURNAL_LOG_QUEUE_SIZE", 1000)
	if queueSize <= 0 {
		queueSize = 1000
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		FrontendURL:   getEnv("FRONTEND_URL", ""),
		DBPath:        getEnv("DB_PATH", "./data/spura.db"),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),
		Completion: CompletionConfig{
			Provider:     strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderOpenAI)),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIBase:   getEnv("OPENAI_BASE_URL", ""),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: getEnvInt("RATE_LIMIT_REQUESTS", 20),
			WindowDuration:    time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		JournalLog: JournalLogConfig{
			Enabled:   getEnvBool("JOURNAL_LOG_ENABLED", false),
			Dir:       getEnv("JOURNAL_LOG_DIR", "./data/logs/journal"),
			QueueSize: queueSize,
		},
		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.AuthJWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET cannot be empty")
	}
	switch c.Completion.Provider {
	case ProviderOpenAI:
		if c.Completion.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY cannot be empty when COMPLETION_PROVIDER=openai")
		}
	case ProviderGemini:
		if c.Completion.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY cannot be empty when COMPLETION_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("unknown COMPLETION_PROVIDER %q", c.Completion.Provider)
	}
	if c.RateLimit.RequestsPerWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be > 0")
	}
	if c.RateLimit.WindowDuration <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be > 0")
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0")
	}
	if c.JournalLog.Enabled && c.JournalLog.Dir == "" {
		return fmt.Errorf("JOURNAL_LOG_DIR cannot be empty when logging is enabled")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}
