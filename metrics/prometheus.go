package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exports scheduler activity as Prometheus metrics.
type PrometheusCollector struct {
	queueDepth      prometheus.Gauge
	drainsTotal     prometheus.Counter
	drainJobsRun    prometheus.Histogram
	drainDuration   prometheus.Histogram
	recursionLimits *prometheus.CounterVec
	jobErrors       *prometheus.CounterVec
}

// NewPrometheusCollector registers its metrics with reg and returns a ready
// Collector.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "reactive",
			Subsystem: "scheduler",
			Name:      "queue_depth",
			Help:      "Current length of the main job queue.",
		}),
		drainsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "reactive",
			Subsystem: "scheduler",
			Name:      "drains_total",
			Help:      "Completed flush drains.",
		}),
		drainJobsRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reactive",
			Subsystem: "scheduler",
			Name:      "drain_jobs_run",
			Help:      "Number of main jobs run per drain.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		drainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reactive",
			Subsystem: "scheduler",
			Name:      "drain_duration_seconds",
			Help:      "Wall time spent in one flush drain.",
			Buckets:   prometheus.DefBuckets,
		}),
		recursionLimits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reactive",
			Subsystem: "scheduler",
			Name:      "recursion_limit_hits_total",
			Help:      "Pre/main/post entries skipped for exceeding the recursion limit.",
		}, []string{"phase", "owner"}),
		jobErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reactive",
			Subsystem: "scheduler",
			Name:      "job_errors_total",
			Help:      "Jobs whose Run panicked and were isolated.",
		}, []string{"owner"}),
	}

	reg.MustRegister(c.queueDepth, c.drainsTotal, c.drainJobsRun, c.drainDuration, c.recursionLimits, c.jobErrors)

	return c
}

func (c *PrometheusCollector) RecordQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

func (c *PrometheusCollector) RecordDrain(jobsRun int, duration time.Duration) {
	c.drainsTotal.Inc()
	c.drainJobsRun.Observe(float64(jobsRun))
	c.drainDuration.Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordRecursionLimitHit(phase, owner string) {
	c.recursionLimits.WithLabelValues(phase, owner).Inc()
}

func (c *PrometheusCollector) RecordJobError(owner string) {
	c.jobErrors.WithLabelValues(owner).Inc()
}
