package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"direct-admission/internal/pkg/config"
)

// ReloadMetrics tracks scheduled reload runs on top of the reload
// configuration metrics (reload_config_*).
type ReloadMetrics struct {
	*config.ConfigMetrics

	// JobRunsTotal counts scheduled runs by status (started, success, failure).
	JobRunsTotal *prometheus.CounterVec

	// LastSuccessTimestamp is the Unix time of the last successful scheduled reload.
	LastSuccessTimestamp prometheus.Gauge
}

// NewReloadMetrics registers the metrics with the default registry.
// Call it once per process.
func NewReloadMetrics() *ReloadMetrics {
	return &ReloadMetrics{
		ConfigMetrics: config.NewConfigMetrics("reload"),
		JobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reload_job_runs_total",
			Help: "Total number of scheduled catalog reload runs by status",
		}, []string{"status"}),
		LastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "reload_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled reload",
		}),
	}
}

// RecordJobRun increments the run counter for status.
func (m *ReloadMetrics) RecordJobRun(status string) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
}

// RecordLastSuccess stamps the current time.
func (m *ReloadMetrics) RecordLastSuccess() {
	m.LastSuccessTimestamp.SetToCurrentTime()
}
