package ranking

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics names as constants for consistency.
const (
	MetricRankingsTotal         = "rankings_total"
	MetricRankingDuration       = "ranking_duration_seconds"
	MetricRankingBatchSize      = "ranking_batch_size"
	MetricLastRankingTimestamp  = "ranking_last_batch_timestamp"
	MetricLastRankingBatchCount = "ranking_last_batch_applicant_count"
)

// Metrics contains Prometheus metrics for ranking evaluations.
// All operations are thread-safe.
type Metrics struct {
	rankingsTotal      prometheus.Counter
	rankingDuration    prometheus.Histogram
	batchSize          prometheus.Histogram
	lastTimestamp      prometheus.Gauge
	lastApplicantCount prometheus.Gauge
}

// NewMetrics creates and returns a new Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a registry.
func NewMetrics() *Metrics {
	return &Metrics{
		rankingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRankingsTotal,
			Help: "Total number of ranking evaluations performed",
		}),
		rankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankingDuration,
			Help:    "Histogram of ranking evaluation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankingBatchSize,
			Help:    "Histogram of applicants per ranking evaluation",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		lastTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRankingTimestamp,
			Help: "Unix timestamp of the last ranking evaluation",
		}),
		lastApplicantCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: MetricLastRankingBatchCount,
			Help: "Number of applicants processed in the last ranking evaluation",
		}),
	}
}

// Register registers all metrics with the given registry.
// Returns an error if registration fails.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		m.rankingsTotal,
		m.rankingDuration,
		m.batchSize,
		m.lastTimestamp,
		m.lastApplicantCount,
	}

	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncRankingsTotal increments the rankings counter.
func (m *Metrics) IncRankingsTotal() {
	m.rankingsTotal.Inc()
}

// ObserveRankingDuration records a ranking duration sample.
func (m *Metrics) ObserveRankingDuration(seconds float64) {
	m.rankingDuration.Observe(seconds)
}

// ObserveBatchSize records the applicant count of a ranking evaluation.
func (m *Metrics) ObserveBatchSize(count float64) {
	m.batchSize.Observe(count)
}

// SetLastRankingTimestamp sets the last ranking timestamp gauge.
func (m *Metrics) SetLastRankingTimestamp(timestamp float64) {
	m.lastTimestamp.Set(timestamp)
}

// SetLastBatchApplicantCount sets the last batch applicant count gauge.
func (m *Metrics) SetLastBatchApplicantCount(count float64) {
	m.lastApplicantCount.Set(count)
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.rankingsTotal,
		m.rankingDuration,
		m.batchSize,
		m.lastTimestamp,
		m.lastApplicantCount,
	}
}
