package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"rqbackend/core"
	"rqbackend/models/api"
	"rqbackend/services"
)

type AssistantHandler struct {
	assistantService services.AssistantService
}

func NewAssistantHandler(assistantService services.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
	}
}

func (h *AssistantHandler) HandleCreateConversation(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Create conversation request received from %s", r.RemoteAddr)

	conversation, err := h.assistantService.CreateConversation(r.Context())
	if err != nil {
		log.Printf("❌ Failed to create conversation: %v", err)
		writeServiceError(w, err, "Assistant", "Failed to create conversation")
		return
	}

	writeJSONResponse(w, http.StatusCreated, api.DomainConversationToAPIConversation(conversation))
}

func (h *AssistantHandler) HandleGetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["id"]
	log.Printf("📋 Get conversation request received from %s: %s", r.RemoteAddr, conversationID)

	maybeConversation, err := h.assistantService.GetConversation(r.Context(), conversationID)
	if err != nil {
		log.Printf("❌ Failed to get conversation: %v", err)
		writeServiceError(w, err, "Assistant", "Failed to get conversation")
		return
	}
	if !maybeConversation.IsPresent() {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainConversationToAPIConversation(maybeConversation.MustGet()))
}

func (h *AssistantHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["id"]
	log.Printf("💬 Send message request received from %s: %s", r.RemoteAddr, conversationID)

	var req api.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userMessage, assistantMessage, err := h.assistantService.SendMessage(r.Context(), conversationID, req.Content)
	if err != nil {
		log.Printf("❌ Failed to send message: %v", err)
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeServiceError(w, err, "Assistant", "Failed to send message")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.SendMessageResponse{
		UserMessage:      api.DomainMessageToAPIMessage(userMessage),
		AssistantMessage: api.DomainMessageToAPIMessage(assistantMessage),
	})
}

func (h *AssistantHandler) HandleClearConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := mux.Vars(r)["id"]
	log.Printf("🧹 Clear conversation request received from %s: %s", r.RemoteAddr, conversationID)

	conversation, err := h.assistantService.ClearConversation(r.Context(), conversationID)
	if err != nil {
		log.Printf("❌ Failed to clear conversation: %v", err)
		if core.IsNotFoundError(err) {
			writeError(w, http.StatusNotFound, "conversation not found")
			return
		}
		writeServiceError(w, err, "Assistant", "Failed to clear conversation")
		return
	}

	writeJSONResponse(w, http.StatusOK, api.DomainConversationToAPIConversation(conversation))
}

func (h *AssistantHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, api.SuggestionsResponse{
		Suggestions: h.assistantService.SuggestedPrompts(),
	})
}

func (h *AssistantHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering assistant endpoints")

	router.HandleFunc("/assistant/conversations", h.HandleCreateConversation).Methods("POST")
	log.Printf("✅ POST /assistant/conversations endpoint registered")

	router.HandleFunc("/assistant/conversations/{id}", h.HandleGetConversation).Methods("GET")
	log.Printf("✅ GET /assistant/conversations/{id} endpoint registered")

	router.HandleFunc("/assistant/conversations/{id}/messages", h.HandleSendMessage).Methods("POST")
	log.Printf("✅ POST /assistant/conversations/{id}/messages endpoint registered")

	router.HandleFunc("/assistant/conversations/{id}/clear", h.HandleClearConversation).Methods("POST")
	log.Printf("✅ POST /assistant/conversations/{id}/clear endpoint registered")

	router.HandleFunc("/assistant/suggestions", h.HandleSuggestions).Methods("GET")
	log.Printf("✅ GET /assistant/suggestions endpoint registered")
}
