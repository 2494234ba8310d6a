package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "explorer"

// Metrics holds the Prometheus counters and histograms for dataset loads and
// the record sink.
type Metrics struct {
	RowsLoaded   *prometheus.CounterVec // labels: dataset
	NullAges     prometheus.Counter
	LoadErrors   prometheus.Counter
	LoadDuration prometheus.Histogram

	// Sink metrics.
	RecordsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	BatchSize        prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows in successfully built tables, by dataset.",
		}, []string{"dataset"}),
		NullAges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "null_ages_total",
			Help:      "Rows whose timestamp could not be parsed into an age.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Dataset loads that failed.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to read and derive a dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RecordsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_published_total",
			Help:      "Derived records written to the sink.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Sink batches that failed to write.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "publish_batch_size",
			Help:      "Number of records per sink batch.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.NullAges,
		m.LoadErrors,
		m.LoadDuration,
		m.RecordsPublished,
		m.PublishErrors,
		m.BatchSize,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
