package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CountsByRoute(t *testing.T) {
	h := MetricsMiddleware("/api/students/{id}/wallet", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/api/students/{id}/wallet", "404"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/students/s1/wallet", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	after := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/api/students/{id}/wallet", "404"))
	assert.Equal(t, before+1, after)
}

func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	h := MetricsMiddleware("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))

	before := testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/health", "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(RequestCounter.WithLabelValues(http.MethodGet, "/health", "200")))
}
