package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ReplyOutcomeGenerated = "generated"
	ReplyOutcomeNoText    = "no_text"
	ReplyOutcomeFallback  = "fallback"
)

// Metrics holds the Prometheus collectors of the service.
// All metrics are prefixed with "rqbackend_".
//
// Metrics:
//   - rqbackend_http_requests_total{method,route,status}
//   - rqbackend_http_request_duration_seconds{method,route}
//   - rqbackend_assistant_replies_total{outcome}
//   - rqbackend_assistant_conversations
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AssistantReplies    *prometheus.CounterVec
}

// NewMetrics creates collectors on a private registry so tests can build any number of them
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rqbackend_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rqbackend_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AssistantReplies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rqbackend_assistant_replies_total",
				Help: "Total number of assistant turns by outcome",
			},
			[]string{"outcome"},
		),
	}
	registry.MustRegister(m.HTTPRequestsTotal, m.HTTPRequestDuration, m.AssistantReplies)
	return m
}

// RegisterConversationGauge exposes the number of live conversations reported by count
func (m *Metrics) RegisterConversationGauge(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "rqbackend_assistant_conversations",
			Help: "Number of conversations currently held in memory",
		},
		func() float64 { return float64(count()) },
	))
}

// ObserveAssistantReply counts one assistant turn. Safe on a nil receiver.
func (m *Metrics) ObserveAssistantReply(outcome string) {
	if m == nil {
		return
	}
	m.AssistantReplies.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and durations labelled by the matched route template.
// It is meant for mux.Router.Use, which only runs for matched routes.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
