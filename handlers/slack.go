package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"rqbackend/core"
	"rqbackend/models/api"
	"rqbackend/services"
)

type SlackHandler struct {
	slackService services.SlackService
}

func NewSlackHandler(slackService services.SlackService) *SlackHandler {
	return &SlackHandler{
		slackService: slackService,
	}
}

func (h *SlackHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	log.Printf("🔍 Slack search request received from %s (query: %q)", r.RemoteAddr, query)

	channels, err := h.slackService.SearchChannels(r.Context(), query)
	if err != nil {
		log.Printf("❌ Failed to search Slack channels: %v", err)
		message := "Failed to search Slack channels"
		if code := core.UpstreamCode(err); code != "" {
			message = code
		}
		writeServiceError(w, err, "Slack", message)
		return
	}

	writeJSONResponse(w, http.StatusOK, api.SlackSearchResponse{
		Channels: api.DomainSlackChannelsToAPISlackChannels(channels),
	})
}

func (h *SlackHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Slack endpoints")

	router.HandleFunc("/slack/search", h.HandleSearch).Methods("GET")
	log.Printf("✅ GET /slack/search endpoint registered")
}
