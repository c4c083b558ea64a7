package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Model backends selectable with MODEL_BACKEND.
const (
	BackendLinear   = "linear"
	BackendRegistry = "registry"
	BackendRemote   = "remote"
	BackendOpenAI   = "openai"
)

type Config struct {
	Port          string
	DatabaseURL   string
	LogLevel      string
	Seed          bool
	DefaultLocale string

	// Sleep model configuration
	ModelBackend string
	ModelPath    string
	ModelName    string
	ModelURL     string
	ModelTimeout time.Duration

	// OpenAI configuration
	OpenAIAPIKey     string
	OpenAISleepModel string
	OpenAIPromptName string
	OpenAIPromptPath string

	// Langfuse configuration
	LangfuseBaseURL   string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseEnv       string
}

func Load() *Config {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Seed:          getEnv("SEED", "false") == "true",
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en-US"),

		ModelBackend: getEnv("MODEL_BACKEND", BackendLinear),
		ModelPath:    getEnv("MODEL_PATH", ""),
		ModelName:    getEnv("MODEL_NAME", "sleep-calculator"),
		ModelURL:     getEnv("MODEL_URL", ""),
		ModelTimeout: getDuration("MODEL_TIMEOUT", 5*time.Second),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAISleepModel: getEnv("OPENAI_SLEEP_MODEL", "gpt-4o-mini"),
		OpenAIPromptName: getEnv("OPENAI_PROMPT_NAME", ""),
		OpenAIPromptPath: getEnv("OPENAI_PROMPT_PATH", ""),

		LangfuseBaseURL:   getEnv("LANGFUSE_BASE_URL", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseEnv:       getEnv("LANGFUSE_ENV", "development"),
	}
}

// HasDatabase reports whether a model registry database is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return d
}
