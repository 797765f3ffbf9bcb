package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TestRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qaportal_test_runs_total",
		Help: "The number of API test runs executed since the service was started",
	}, []string{"result"})

	PerformanceRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qaportal_performance_runs_total",
		Help: "The number of simulated performance runs since the service was started",
	})

	OutboundRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qaportal_outbound_request_duration_seconds",
		Help:    "Wall-clock duration of outbound probe requests",
		Buckets: prometheus.DefBuckets,
	})
)
