package gateway

import "github.com/prometheus/client_golang/prometheus"

var _ prometheus.Collector = (*Metrics)(nil)

type Metrics struct {
	Searches         *prometheus.CounterVec
	ProviderFailures prometheus.Counter
	FallbacksServed  prometheus.Counter
	ResultsReturned  prometheus.Histogram
	ProviderDuration prometheus.Histogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ytjs",
			Subsystem: "gateway",
			Name:      "searches_total",
			Help:      "Total number of non-empty searches, by source",
		}, []string{"source"}),
		ProviderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ytjs",
			Subsystem: "gateway",
			Name:      "provider_failures_total",
			Help:      "Total number of failed provider calls",
		}),
		FallbacksServed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ytjs",
			Subsystem: "gateway",
			Name:      "fallbacks_served_total",
			Help:      "Total number of responses served from the fallback list",
		}),
		ResultsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ytjs",
			Subsystem: "gateway",
			Name:      "results_returned",
			Help:      "Number of videos returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50},
		}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ytjs",
			Subsystem: "gateway",
			Name:      "provider_duration_seconds",
			Help:      "Duration of provider calls",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(c chan<- prometheus.Metric) {
	m.Searches.Collect(c)
	m.ProviderFailures.Collect(c)
	m.FallbacksServed.Collect(c)
	m.ResultsReturned.Collect(c)
	m.ProviderDuration.Collect(c)
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(d chan<- *prometheus.Desc) {
	m.Searches.Describe(d)
	m.ProviderFailures.Describe(d)
	m.FallbacksServed.Describe(d)
	m.ResultsReturned.Describe(d)
	m.ProviderDuration.Describe(d)
}
