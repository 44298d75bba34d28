package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TVMaze client metrics
var (
	TVMazeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tvmaze_requests_total",
			Help: "Total number of requests sent to the TVMaze API.",
		},
		[]string{"endpoint", "outcome"},
	)

	TVMazeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tvmaze_request_duration_seconds",
			Help:    "Duration of TVMaze API requests, including cache hits.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Widget panel metrics. Outcome is one of applied, stale, failed or skipped.
var (
	PanelUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_updates_total",
			Help: "Total number of panel update attempts by outcome.",
		},
		[]string{"panel", "outcome"},
	)
)

// HTTP surface metrics
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served, by route template and status code.",
		},
		[]string{"route", "code"},
	)
)

func init() {
	prometheus.MustRegister(
		TVMazeRequestsTotal,
		TVMazeRequestDuration,
		PanelUpdatesTotal,
		HTTPRequestsTotal,
	)
}
