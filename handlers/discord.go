package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"rqbackend/models/api"
	"rqbackend/services"
)

type DiscordHandler struct {
	discordService services.DiscordService
}

func NewDiscordHandler(discordService services.DiscordService) *DiscordHandler {
	return &DiscordHandler{
		discordService: discordService,
	}
}

func (h *DiscordHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	log.Printf("🔍 Discord search request received from %s (query: %q)", r.RemoteAddr, query)

	if query == "" {
		log.Printf("❌ Missing query parameter")
		writeError(w, http.StatusBadRequest, "query parameter is required")
		return
	}

	guilds, err := h.discordService.SearchCommunities(r.Context(), query)
	if err != nil {
		log.Printf("❌ Failed to search Discord communities: %v", err)
		writeServiceError(w, err, "Discord", "Failed to search Discord communities")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DiscordSearchResponse{
		Guilds: api.DomainDiscordGuildsToAPIDiscordGuilds(guilds),
	})
}

func (h *DiscordHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Discord join request received from %s", r.RemoteAddr)

	var req api.DiscordJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	communityID := strings.TrimSpace(req.CommunityID)
	if communityID == "" {
		log.Printf("❌ Missing communityId in request")
		writeError(w, http.StatusBadRequest, "communityId is required")
		return
	}

	invite, err := h.discordService.CreateInvite(r.Context(), communityID)
	if err != nil {
		log.Printf("❌ Failed to create Discord invite for guild %s: %v", communityID, err)
		writeServiceError(w, err, "Discord", "Failed to create Discord invite")
		return
	}

	log.Printf("✅ Discord invite created for guild %s", communityID)
	writeJSONResponse(w, http.StatusOK, api.DiscordJoinResponse{InviteURL: invite.URL})
}

func (h *DiscordHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering Discord endpoints")

	router.HandleFunc("/discord/search", h.HandleSearch).Methods("GET")
	log.Printf("✅ GET /discord/search endpoint registered")

	router.HandleFunc("/discord/join", h.HandleJoin).Methods("POST")
	log.Printf("✅ POST /discord/join endpoint registered")
}
