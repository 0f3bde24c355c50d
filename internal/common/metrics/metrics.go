// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_api_requests_total",
			Help: "Total number of dashboard API calls by outcome",
		},
		[]string{"operation", "outcome"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dashboard_api_request_duration_seconds",
			Help: "Duration of dashboard API calls in seconds",
		},
		[]string{"operation"},
	)

	DraftsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_drafts_total",
			Help: "Total number of generated drafts by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	DevServerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_devserver_requests_total",
			Help: "Total number of requests served by the dev backend",
		},
		[]string{"method", "route", "status"},
	)

	DevServerSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_devserver_sessions_active",
			Help: "Number of sessions created and not yet logged out",
		},
	)
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeFallback = "fallback"
)
