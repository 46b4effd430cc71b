package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM provider identifiers.
const (
	ProviderBedrock   = "bedrock"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// DefaultBedrockModelID is used when BEDROCK_MODEL_ID is not set.
const DefaultBedrockModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

// Config holds all configuration values.
type Config struct {
	// Athena
	AWSRegion            string
	AthenaDatabase       string
	AthenaTable          string
	AthenaOutputLocation string
	PollInterval         time.Duration
	PollTimeout          time.Duration

	// Model
	LLMProvider     string
	BedrockModelID  string
	LLMModel        string
	OllamaHost      string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from a .env file (if present) and the environment.
func Load() Config {
	// Missing .env is fine, the environment alone is a valid source.
	_ = godotenv.Load()

	return Config{
		AWSRegion:            getEnv("AWS_REGION", "us-west-2"),
		AthenaDatabase:       getEnv("ATHENA_DATABASE", ""),
		AthenaTable:          getEnv("ATHENA_TABLE", ""),
		AthenaOutputLocation: getEnv("ATHENA_OUTPUT_BUCKET", ""),
		PollInterval:         getDuration("ATHENA_POLL_INTERVAL", time.Second),
		PollTimeout:          getDuration("ATHENA_POLL_TIMEOUT", 5*time.Minute),

		LLMProvider:     getEnv("LLM_PROVIDER", ProviderBedrock),
		BedrockModelID:  getEnv("BEDROCK_MODEL_ID", DefaultBedrockModelID),
		LLMModel:        getEnv("LLM_MODEL", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		LogFile:  getEnv("PIPELINE_CHAT_LOG_FILE", "/tmp/pipeline-chat.log"),
		LogLevel: parseLogLevel(getEnv("PIPELINE_CHAT_LOG_LEVEL", "INFO")),
	}
}

// Validate reports every missing required setting in one error.
func (c Config) Validate() error {
	var missing []string
	if c.AthenaDatabase == "" {
		missing = append(missing, "ATHENA_DATABASE")
	}
	if c.AthenaTable == "" {
		missing = append(missing, "ATHENA_TABLE")
	}
	if c.AthenaOutputLocation == "" {
		missing = append(missing, "ATHENA_OUTPUT_BUCKET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	switch c.LLMProvider {
	case ProviderBedrock, ProviderOllama, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
