package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"rqbackend/core"
	"rqbackend/models/api"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, api.ErrorResponse{Error: message})
}

// writeServiceError maps validation and not-configured errors to their status codes and
// everything else to a 500 carrying fallbackMessage
func writeServiceError(w http.ResponseWriter, err error, integration, fallbackMessage string) {
	switch {
	case core.IsValidationError(err):
		writeError(w, http.StatusBadRequest, core.ValidationMessage(err))
	case core.IsNotConfiguredError(err):
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("%s integration is not configured", integration))
	case core.IsNotFoundError(err) && !isUpstream(err):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, fallbackMessage)
	}
}

func isUpstream(err error) bool {
	var upErr *core.UpstreamError
	return errors.As(err, &upErr)
}

// NotFoundHandler answers unmatched routes and method mismatches
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("⚠️ No route for %s %s", r.Method, r.URL.Path)
		writeError(w, http.StatusNotFound, fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
	})
}

// HandleHealth reports liveness
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
