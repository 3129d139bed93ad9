package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics records per-route request counts and latency.
type Metrics struct {
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewMetrics creates request metrics registered on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inklet",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inklet",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(m.requestTotal, m.requestLatency)

	return m
}

// Handle wraps a handler and observes its outcome under the route label.
func (m *Metrics) Handle(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, req)

		labels := prometheus.Labels{
			"method": req.Method,
			"route":  route,
			"status": strconv.Itoa(rec.status),
		}
		m.requestTotal.With(labels).Inc()
		m.requestLatency.With(labels).Observe(time.Since(start).Seconds())
	}
}
