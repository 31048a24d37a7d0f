package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_chat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "persona_chat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Business metrics
	ChatsProvisioned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "persona_chat_chats_provisioned_total",
			Help: "Chats created by list auto-provisioning",
		},
	)

	MessagesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_chat_messages_stored_total",
			Help: "Messages persisted",
		},
		[]string{"sender"}, // "user" or "ai"
	)

	Completions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_chat_completions_total",
			Help: "Completion attempts by provider and outcome",
		},
		[]string{"provider", "outcome"}, // outcome: "success" or "fallback"
	)

	CompletionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "persona_chat_completion_latency_seconds",
			Help:    "Completion service latency",
			Buckets: []float64{.1, .25, .5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"provider"},
	)
)
