package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"rqbackend/clients"
	anthropicclient "rqbackend/clients/anthropic"
	discordclient "rqbackend/clients/discord"
	slackclient "rqbackend/clients/slack"
	"rqbackend/clients/textgen"
	"rqbackend/config"
	"rqbackend/core"
	"rqbackend/handlers"
	"rqbackend/metrics"
	"rqbackend/middleware"
	"rqbackend/services"
	assistantservice "rqbackend/services/assistant"
	discordservice "rqbackend/services/discord"
	slackservice "rqbackend/services/slack"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "rqbackend",
		LogsURL:     cfg.ServerLogsURL,
	})

	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	serviceMetrics := metrics.NewMetrics()

	discordService, err := newDiscordService(cfg, httpClient)
	if err != nil {
		return err
	}
	slackService := newSlackService(cfg, httpClient)
	conversationStore := assistantservice.NewConversationStore()
	serviceMetrics.RegisterConversationGauge(conversationStore.Len)
	tokenCounter := core.NewTokenCounter()
	assistantService := newAssistantService(cfg, httpClient, conversationStore, tokenCounter, serviceMetrics)

	router := handlers.NewRouter(
		handlers.NewDiscordHandler(discordService),
		handlers.NewSlackHandler(slackService),
		handlers.NewAssistantHandler(assistantService),
	)
	router.Use(serviceMetrics.Middleware)
	router.Handle("/metrics", serviceMetrics.Handler()).Methods("GET")
	log.Printf("✅ GET /metrics endpoint registered")

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window)

	// Periodic cleanup of idle conversations and expired token counts
	cleanupTicker := time.NewTicker(1 * time.Minute)
	go func() {
		for range cleanupTicker.C {
			_ = alertMiddleware.WrapBackgroundTask("CleanupIdleConversations", func() error {
				return assistantService.CleanupIdleConversations(context.Background())
			})()
			_ = alertMiddleware.WrapBackgroundTask("PruneTokenCountCache", func() error {
				tokenCounter.PruneExpired()
				return nil
			})()
		}
	}()
	defer cleanupTicker.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newHTTPHandler(router, cfg.AllowedOrigins(), alertMiddleware, rateLimiter),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

// newHTTPHandler wraps router so that CORS headers are present on every response,
// including rate limit rejections and recovered panics
func newHTTPHandler(
	router http.Handler,
	allowedOrigins []string,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	rateLimiter *middleware.RateLimiter,
) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{
			middleware.RequestIDHeader,
			"RateLimit-Limit",
			"RateLimit-Remaining",
			"RateLimit-Reset",
			"Retry-After",
		},
	})

	return c.Handler(
		alertMiddleware.HTTPMiddleware(
			middleware.RequestLogging(
				rateLimiter.Middleware(router),
			),
		),
	)
}

func newDiscordService(cfg *config.AppConfig, httpClient *http.Client) (services.DiscordService, error) {
	if !cfg.DiscordConfig.IsConfigured() {
		return discordservice.NewOptionalDiscordService(), nil
	}

	discordClient, err := discordclient.NewDiscordClient(httpClient, cfg.DiscordConfig.BotToken)
	if err != nil {
		return nil, err
	}
	return discordservice.NewDiscordService(discordClient, cfg.DiscordConfig.EnrichWorkers, cfg.UpstreamTimeout), nil
}

func newSlackService(cfg *config.AppConfig, httpClient *http.Client) services.SlackService {
	if !cfg.SlackConfig.IsConfigured() {
		return slackservice.NewOptionalSlackService()
	}

	slackClient := slackclient.NewSlackClient(httpClient, cfg.SlackConfig.UserToken)
	return slackservice.NewSlackService(slackClient, cfg.SlackConfig.MaxPages)
}

func newAssistantService(
	cfg *config.AppConfig,
	httpClient *http.Client,
	store *assistantservice.ConversationStore,
	tokenCounter *core.TokenCounter,
	serviceMetrics *metrics.Metrics,
) services.AssistantService {
	assistantCfg := cfg.AssistantConfig

	var assistantClient clients.AssistantClient
	switch {
	case !assistantCfg.IsConfigured():
		assistantClient = clients.NewOptionalAssistantClient()
	case assistantCfg.Provider == config.AssistantProviderAnthropic:
		assistantClient = anthropicclient.NewAnthropicClient(httpClient, assistantCfg.APIKey, assistantCfg.Model)
	default:
		assistantClient = textgen.NewTextGenClient(httpClient, assistantCfg.APIKey, assistantCfg.Model, assistantCfg.Endpoint)
	}

	return assistantservice.NewAssistantService(
		assistantClient,
		store,
		tokenCounter,
		assistantservice.Options{
			MaxPromptTokens: assistantCfg.MaxPromptTokens,
			MaxTokens:       assistantCfg.MaxTokens,
			Temperature:     assistantCfg.Temperature,
			RequestTimeout:  cfg.UpstreamTimeout,
			ConversationTTL: assistantCfg.ConversationTTL,
			Metrics:         serviceMetrics,
		},
	)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
