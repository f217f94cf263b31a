package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AssistantProviderTextGen   = "textgen"
	AssistantProviderAnthropic = "anthropic"
)

type DiscordConfig struct {
	BotToken      string
	EnrichWorkers int
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type SlackConfig struct {
	UserToken       string
	MaxPages        int
	AlertWebhookURL string // optional, used for error alerts only
}

// IsConfigured returns true if all required Slack configuration is present
func (c SlackConfig) IsConfigured() bool {
	return c.UserToken != ""
}

type AssistantConfig struct {
	Provider        string
	APIKey          string
	Model           string
	Endpoint        string
	MaxTokens       int
	Temperature     float64
	MaxPromptTokens int
	ConversationTTL time.Duration
}

// IsConfigured returns true if the selected provider has what it needs to make calls
func (c AssistantConfig) IsConfigured() bool {
	switch c.Provider {
	case AssistantProviderAnthropic:
		return c.APIKey != ""
	case AssistantProviderTextGen:
		// self-hosted endpoints may not require a key
		return c.APIKey != "" || c.Endpoint != ""
	default:
		return false
	}
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

type AppConfig struct {
	Port                  string
	Environment           string
	CORSProductionOrigin  string
	CORSDevelopmentOrigin string
	ServerLogsURL         string
	UpstreamTimeout       time.Duration
	UseStrictConfig       bool // If true, error when any integration is not fully configured

	RateLimit       RateLimitConfig
	DiscordConfig   DiscordConfig
	SlackConfig     SlackConfig
	AssistantConfig AssistantConfig
}

// AllowedOrigins returns the configured CORS origins, skipping empty entries
func (c *AppConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range []string{c.CORSProductionOrigin, c.CORSDevelopmentOrigin} {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	upstreamTimeout, err := getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	rateLimitMax, err := getEnvInt("RATE_LIMIT_MAX", 100)
	if err != nil {
		return nil, err
	}
	rateLimitWindow, err := getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	enrichWorkers, err := getEnvInt("DISCORD_ENRICH_WORKERS", 5)
	if err != nil {
		return nil, err
	}
	slackMaxPages, err := getEnvInt("SLACK_MAX_PAGES", 1)
	if err != nil {
		return nil, err
	}
	maxTokens, err := getEnvInt("ASSISTANT_MAX_TOKENS", 500)
	if err != nil {
		return nil, err
	}
	maxPromptTokens, err := getEnvInt("ASSISTANT_MAX_PROMPT_TOKENS", 0)
	if err != nil {
		return nil, err
	}
	temperature, err := getEnvFloat("ASSISTANT_TEMPERATURE", 0.7)
	if err != nil {
		return nil, err
	}
	conversationTTL, err := getEnvDuration("ASSISTANT_CONVERSATION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		Port:                  getEnvWithDefault("PORT", "8080"),
		Environment:           getEnvWithDefault("ENVIRONMENT", "dev"),
		CORSProductionOrigin:  getEnvWithDefault("CORS_PRODUCTION_ORIGIN", ""),
		CORSDevelopmentOrigin: getEnvWithDefault("CORS_DEVELOPMENT_ORIGIN", "http://localhost:5173"),
		ServerLogsURL:         getEnvWithDefault("SERVER_LOGS_URL", ""),
		UpstreamTimeout:       upstreamTimeout,
		UseStrictConfig:       getEnvWithDefault("USE_STRICT_CONFIG", "false") == "true",

		RateLimit: RateLimitConfig{
			Max:    rateLimitMax,
			Window: rateLimitWindow,
		},

		DiscordConfig: DiscordConfig{
			BotToken:      os.Getenv("DISCORD_BOT_TOKEN"),
			EnrichWorkers: enrichWorkers,
		},

		SlackConfig: SlackConfig{
			UserToken:       os.Getenv("SLACK_USER_TOKEN"),
			MaxPages:        slackMaxPages,
			AlertWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},

		AssistantConfig: AssistantConfig{
			Provider:        strings.ToLower(getEnvWithDefault("ASSISTANT_PROVIDER", AssistantProviderTextGen)),
			APIKey:          os.Getenv("ASSISTANT_API_KEY"),
			Model:           os.Getenv("ASSISTANT_MODEL"),
			Endpoint:        os.Getenv("ASSISTANT_ENDPOINT"),
			MaxTokens:       maxTokens,
			Temperature:     temperature,
			MaxPromptTokens: maxPromptTokens,
			ConversationTTL: conversationTTL,
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *AppConfig) validate() error {
	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimit.Max)
	}
	if c.DiscordConfig.EnrichWorkers <= 0 {
		return fmt.Errorf("DISCORD_ENRICH_WORKERS must be positive, got %d", c.DiscordConfig.EnrichWorkers)
	}
	if c.SlackConfig.MaxPages <= 0 {
		return fmt.Errorf("SLACK_MAX_PAGES must be positive, got %d", c.SlackConfig.MaxPages)
	}
	switch c.AssistantConfig.Provider {
	case AssistantProviderTextGen, AssistantProviderAnthropic:
	default:
		return fmt.Errorf("ASSISTANT_PROVIDER must be %q or %q, got %q",
			AssistantProviderTextGen, AssistantProviderAnthropic, c.AssistantConfig.Provider)
	}

	// Log which integrations are configured
	if c.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord integration configured")
	} else {
		log.Printf("⚠️ Discord integration not configured - Discord features will be disabled")
		if c.UseStrictConfig {
			return fmt.Errorf("discord integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if c.SlackConfig.IsConfigured() {
		log.Printf("✅ Slack integration configured")
	} else {
		log.Printf("⚠️ Slack integration not configured - Slack features will be disabled")
		if c.UseStrictConfig {
			return fmt.Errorf("slack integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if c.AssistantConfig.IsConfigured() {
		log.Printf("✅ Assistant integration configured (provider: %s)", c.AssistantConfig.Provider)
	} else {
		log.Printf("⚠️ Assistant integration not configured - chat replies will use the connection fallback")
		if c.UseStrictConfig {
			return fmt.Errorf("assistant integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if c.SlackConfig.AlertWebhookURL == "" {
		log.Printf("⚠️ SLACK_ALERT_WEBHOOK_URL not set - error alerts will only be logged")
	}

	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 15m: %w", key, err)
	}
	return parsed, nil
}
