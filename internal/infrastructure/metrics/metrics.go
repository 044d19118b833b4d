package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Planner metrics
	SimulationsTotal   *prometheus.CounterVec
	SimulationDuration prometheus.Histogram
	SimulationPeriods  prometheus.Histogram
	ComparisonsTotal   prometheus.Counter
	SnapshotsStored    prometheus.Counter

	// Plan cache metrics
	PlanCacheHits   prometheus.Counter
	PlanCacheMisses prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Planner metrics
		SimulationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debtplan_simulations_total",
				Help: "Total number of repayment simulations by strategy and outcome",
			},
			[]string{"strategy", "status"},
		),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "debtplan_simulation_duration_seconds",
			Help:    "Duration of repayment simulations",
			Buckets: prometheus.DefBuckets,
		}),
		SimulationPeriods: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "debtplan_simulation_periods",
			Help:    "Number of period rows emitted per simulation",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		ComparisonsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "debtplan_comparisons_total",
			Help: "Total number of refinancing comparisons",
		}),
		SnapshotsStored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "debtplan_snapshots_stored_total",
			Help: "Total number of plan snapshots persisted",
		}),

		// Plan cache metrics
		PlanCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "debtplan_plan_cache_hits_total",
			Help: "Total plan cache hits",
		}),
		PlanCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "debtplan_plan_cache_misses_total",
			Help: "Total plan cache misses",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debtplan_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "debtplan_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "debtplan_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "debtplan_rate_limit_hits_total",
				Help: "Total requests rejected by the rate limiter",
			},
			[]string{"path"},
		),
	}
}
