package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BackendMetrics counts calls made to the booking backend.
type BackendMetrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewBackendMetrics(reg prometheus.Registerer) *BackendMetrics {
	m := &BackendMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentist_booking",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total calls to the booking backend",
		}, []string{"operation", "code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dentist_booking",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of booking backend calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestLatency)
	return m
}

// ObserveRequest records one backend call. code is "ok" or a backend error code.
func (m *BackendMetrics) ObserveRequest(operation, code string, seconds float64) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(operation, code).Inc()
	m.requestLatency.WithLabelValues(operation).Observe(seconds)
}

// HTTPMetrics counts requests served by the web surface.
type HTTPMetrics struct {
	requestsTotal *prometheus.CounterVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dentist_booking",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests served",
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal)
	return m
}

func (m *HTTPMetrics) ObserveRequest(method, route, status string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, route, status).Inc()
}

// Handler exposes the collectors in reg for scraping.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
