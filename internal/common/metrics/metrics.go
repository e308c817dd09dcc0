// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recommendation"

// Per-task-type counters and histograms for the recommendation workers.
// Durations are bucketed for scoring runs that fan out over a candidate
// pool of up to a few hundred jobs.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_jobs_completed_total",
			Help:      "Recommendation jobs completed, by task type",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_jobs_failed_total",
			Help:      "Recommendation jobs failed, by task type and error code",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "worker_job_duration_seconds",
			Help:      "End-to-end job handling time, by task type",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_jobs_active",
			Help:      "Jobs currently being handled, by task type",
		},
		[]string{"task_type"},
	)
)
