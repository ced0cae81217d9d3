package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcomes recorded by QueriesTotal
const (
	OutcomeFound       = "found"
	OutcomeStoreEmpty  = "store_empty"
	OutcomeFilteredOut = "filtered_out"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	QueriesTotal        *prometheus.CounterVec
	StoreQueryDuration  prometheus.Histogram
	RecordsReturned     prometheus.Histogram
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics registers the service metrics on reg
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route, method and status code",
		}, []string{"route", "method", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "method"}),
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_queries_total",
			Help:      "The total number of flight queries by outcome",
		}, []string{"outcome"}),
		StoreQueryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_query_duration_seconds",
			Help:      "Time spent waiting on the document store",
			Buckets:   prometheus.DefBuckets,
		}),
		RecordsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_records_returned",
			Help:      "Number of flight records returned per successful query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
