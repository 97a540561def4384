package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_analyzer_analyses_total",
			Help: "Total number of symbol analyses by outcome",
		},
		[]string{"symbol", "outcome"},
	)

	validationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_analyzer_validation_failures_total",
			Help: "Price series or request validation failures",
		},
		[]string{"symbol"},
	)

	fetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_analyzer_fetch_errors_total",
			Help: "Data source fetch errors",
		},
		[]string{"source"},
	)

	analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_analyzer_analysis_duration_seconds",
			Help:    "Time spent fetching and analyzing one symbol",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	lastRun = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "stock_analyzer_last_run_timestamp_seconds",
		Help: "Unix time of the last completed batch run",
	})
)

func init() {
	prometheus.MustRegister(analysesTotal)
	prometheus.MustRegister(validationFailures)
	prometheus.MustRegister(fetchErrors)
	prometheus.MustRegister(analysisDuration)
	prometheus.MustRegister(lastRun)
}

// Outcome labels for RecordAnalysis.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// RecordAnalysis counts one symbol analysis.
func RecordAnalysis(symbol, outcome string) {
	analysesTotal.WithLabelValues(symbol, outcome).Inc()
	if outcome == OutcomeInvalid {
		validationFailures.WithLabelValues(symbol).Inc()
	}
}

// RecordFetchError counts a failed fetch from source.
func RecordFetchError(source string) {
	fetchErrors.WithLabelValues(source).Inc()
}

// ObserveAnalysis records how long one symbol took.
func ObserveAnalysis(source string, d time.Duration) {
	analysisDuration.WithLabelValues(source).Observe(d.Seconds())
}

// MarkRun stamps the completion time of a batch.
func MarkRun(t time.Time) {
	lastRun.Set(float64(t.Unix()))
}

// Handler serves the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr until the server fails.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return srv.ListenAndServe()
}
