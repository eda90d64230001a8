package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAreExported(t *testing.T) {
	reg := prometheus.NewRegistry()
	backend := NewBackendMetrics(reg)
	web := NewHTTPMetrics(reg)

	backend.ObserveRequest("create_booking", "ok", 0.05)
	web.ObserveRequest(http.MethodPost, "/bookings", "201")

	rr := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `dentist_booking_backend_requests_total{code="ok",operation="create_booking"} 1`)
	assert.Contains(t, body, "dentist_booking_backend_request_duration_seconds")
	assert.Contains(t, body, `dentist_booking_http_requests_total{method="POST",route="/bookings",status="201"} 1`)
}

func TestNilMetricsAreNoops(t *testing.T) {
	var backend *BackendMetrics
	var web *HTTPMetrics
	assert.NotPanics(t, func() {
		backend.ObserveRequest("get_dentist", "network", 1)
		web.ObserveRequest(http.MethodGet, "/dentists", "200")
	})
}
