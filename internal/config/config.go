package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ErrMissingBackendURL is the only fatal configuration condition: the
// companion refuses to start without a prediction backend to talk to.
var ErrMissingBackendURL = errors.New("BACKEND_BASE_URL is not defined")

type Config struct {
	Port           string
	LogLevel       string
	BackendBaseURL string
	TokenPath      string

	// OpenAI configuration (guidance narratives, optional)
	OpenAIAPIKey        string
	OpenAIGuidanceModel string

	// OpenTelemetry configuration (optional)
	OTLPEndpoint string
	OTLPHeaders  string
	OTelEnv      string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", ""),
		TokenPath:      getEnv("TOKEN_PATH", defaultTokenPath()),

		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIGuidanceModel: getEnv("OPENAI_GUIDANCE_MODEL", "gpt-4o-mini"),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPHeaders:  getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
		OTelEnv:      getEnv("OTEL_ENVIRONMENT", "development"),
	}

	if cfg.BackendBaseURL == "" {
		return nil, ErrMissingBackendURL
	}

	return cfg, nil
}

// defaultTokenPath is where the session token persists across runs.
func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".pcos-companion", "pcos_token")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
