package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "koita"
	subsystem = "chat_api"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "llm_duration_seconds",
			Help:      "Model call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model", "stream"},
	)

	FirstTokenDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "first_token_seconds",
			Help:      "Time to first token for streaming requests",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"model"},
	)

	StreamDeltasTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stream_deltas_total",
			Help:      "Content deltas relayed to clients",
		},
		[]string{"model"},
	)

	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_streams",
			Help:      "Currently open chat streams",
		},
	)

	ChatStreamsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "chat_streams_total",
			Help:      "Chat streams by outcome",
		},
		[]string{"outcome"},
	)

	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "provider_errors_total",
			Help:      "Total upstream provider failures",
		},
		[]string{"provider", "operation"},
	)

	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "search_requests_total",
			Help:      "Web search requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ConversationsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
		[]string{"temporary"},
	)

	AuthRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "auth_requests_total",
			Help:      "Authentication attempts",
		},
		[]string{"auth_type", "status"},
	)

	TempConversationsPurgedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "temp_conversations_purged_total",
			Help:      "Temporary conversations removed by the purge job",
		},
	)
)

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint string, status int, durationSec float64) {
	statusStr := strconv.Itoa(status)
	RequestsTotal.WithLabelValues(method, endpoint, statusStr).Inc()
	RequestDuration.WithLabelValues(method, endpoint, statusStr).Observe(durationSec)
}

// RecordLLMDuration records the duration of a model call
func RecordLLMDuration(model string, stream bool, durationSec float64) {
	LLMDuration.WithLabelValues(model, strconv.FormatBool(stream)).Observe(durationSec)
}

func RecordFirstToken(model string, durationSec float64) {
	FirstTokenDuration.WithLabelValues(model).Observe(durationSec)
}

func RecordProviderError(provider, operation string) {
	ProviderErrorsTotal.WithLabelValues(provider, operation).Inc()
}

func RecordSearch(provider, outcome string) {
	if provider == "" {
		provider = "none"
	}
	SearchRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

func RecordConversationCreated(temporary bool) {
	ConversationsCreatedTotal.WithLabelValues(strconv.FormatBool(temporary)).Inc()
}

// RecordAuth records a login or registration attempt
func RecordAuth(authType string, success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	AuthRequestsTotal.WithLabelValues(authType, status).Inc()
}

func RecordChatStream(outcome string) {
	ChatStreamsTotal.WithLabelValues(outcome).Inc()
}
