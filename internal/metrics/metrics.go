package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridetracker_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ridetracker_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	SyncRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridetracker_sync_runs_total",
			Help: "Sync sweep executions by kind",
		},
		[]string{"kind"}, // "users", "group", "inter-group"
	)

	SyncFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ridetracker_sync_failures_total",
			Help: "Per-user sync failures tolerated by the sweep",
		},
		[]string{"kind"},
	)
)

func Init() {
	prometheus.MustRegister(ReqCount, ReqDuration, SyncRuns, SyncFailures)
}
