package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every analyzer metric
var Registry = prometheus.NewRegistry()

var (
	// Run metrics
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_runs_total",
			Help: "Total number of completed analysis runs",
		},
		[]string{"source"},
	)

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analyzer_run_duration_seconds",
			Help:    "Duration of analysis runs",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// Signal metrics
	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_signals_total",
			Help: "Total number of signals produced by type",
		},
		[]string{"type"},
	)

	signalConfidence = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analyzer_signal_confidence",
			Help: "Confidence of the latest signal",
		},
		[]string{"symbol"},
	)

	// Market data metrics
	lastPrice = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "analyzer_last_price",
			Help: "Close of the last analyzed record",
		},
		[]string{"symbol"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyzer_errors_total",
			Help: "Total number of errors by category",
		},
		[]string{"category"},
	)
)

func init() {
	Registry.MustRegister(runsTotal)
	Registry.MustRegister(runDuration)
	Registry.MustRegister(signalsTotal)
	Registry.MustRegister(signalConfidence)
	Registry.MustRegister(lastPrice)
	Registry.MustRegister(errorsTotal)
}

// Handler serves the Prometheus metrics endpoint
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordRun records a completed analysis run
func RecordRun(source string, seconds float64) {
	runsTotal.WithLabelValues(source).Inc()
	runDuration.WithLabelValues(source).Observe(seconds)
}

// RecordSignal records a produced signal and its confidence
func RecordSignal(symbol, signalType string, confidence int) {
	signalsTotal.WithLabelValues(signalType).Inc()
	signalConfidence.WithLabelValues(symbol).Set(float64(confidence))
}

// UpdatePrice updates the last price metric
func UpdatePrice(symbol string, price float64) {
	lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordError records an error metric
func RecordError(category string) {
	errorsTotal.WithLabelValues(category).Inc()
}
