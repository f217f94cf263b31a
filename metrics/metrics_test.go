package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	m := NewMetrics()
	router := mux.NewRouter()
	router.Use(m.Middleware)
	router.HandleFunc("/api/v1/assistant/conversations/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET")

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/assistant/conversations/conv_x", nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/assistant/conversations/{id}", "404"),
	))
}

func TestObserveAssistantReply(t *testing.T) {
	m := NewMetrics()

	m.ObserveAssistantReply(ReplyOutcomeGenerated)
	m.ObserveAssistantReply(ReplyOutcomeFallback)
	m.ObserveAssistantReply(ReplyOutcomeFallback)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssistantReplies.WithLabelValues(ReplyOutcomeGenerated)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AssistantReplies.WithLabelValues(ReplyOutcomeFallback)))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.ObserveAssistantReply(ReplyOutcomeNoText) })
}

func TestHandler_ExposesConversationGauge(t *testing.T) {
	m := NewMetrics()
	m.RegisterConversationGauge(func() int { return 3 })

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "rqbackend_assistant_conversations 3")
}
