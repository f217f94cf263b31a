package handlers

import (
	"log"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint under /api/v1 plus the health check
func NewRouter(discordHandler *DiscordHandler, slackHandler *SlackHandler, assistantHandler *AssistantHandler) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = NotFoundHandler()
	router.MethodNotAllowedHandler = NotFoundHandler()

	router.HandleFunc("/health", HandleHealth).Methods("GET")
	log.Printf("✅ GET /health endpoint registered")

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.NotFoundHandler = NotFoundHandler()
	apiRouter.MethodNotAllowedHandler = NotFoundHandler()

	discordHandler.SetupEndpoints(apiRouter)
	slackHandler.SetupEndpoints(apiRouter)
	assistantHandler.SetupEndpoints(apiRouter)

	return router
}
