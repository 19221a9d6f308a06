package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPMetrics(t *testing.T) (*HTTPMetrics, *prometheus.Registry, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := NewHTTPMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(metrics))
	return metrics, registry, router
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestHTTPMetricsMiddleware_BasicRequest(t *testing.T) {
	_, registry, router := newTestHTTPMetrics(t)
	router.GET("/api/v1/facilitator/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"initialized": true})
	})

	w := serve(router, http.MethodGet, "/api/v1/facilitator/config")
	assert.Equal(t, http.StatusOK, w.Code)

	labels := map[string]string{"method": "GET", "path": "/api/v1/facilitator/config", "status": "200"}
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_http_requests_total", labels))

	duration := findMetric(t, registry, "swappy_http_request_duration_seconds", labels)
	require.NotNil(t, duration)
	assert.Equal(t, uint64(1), duration.GetHistogram().GetSampleCount())

	size := findMetric(t, registry, "swappy_http_response_size_bytes", labels)
	require.NotNil(t, size)
	assert.Equal(t, uint64(1), size.GetHistogram().GetSampleCount())
}

func TestHTTPMetricsMiddleware_StatusAndMethodLabels(t *testing.T) {
	_, registry, router := newTestHTTPMetrics(t)
	router.GET("/swap", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	router.POST("/swap", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "slippage_exceeded"})
	})

	serve(router, http.MethodGet, "/swap")
	serve(router, http.MethodGet, "/swap")
	serve(router, http.MethodPost, "/swap")

	assert.Equal(t, float64(2), counterValue(t, registry, "swappy_http_requests_total",
		map[string]string{"method": "GET", "status": "200"}))
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_http_requests_total",
		map[string]string{"method": "POST", "status": "422"}))
}

func TestHTTPMetricsMiddleware_RouteTemplate(t *testing.T) {
	_, registry, router := newTestHTTPMetrics(t)
	router.GET("/api/v1/accounts/:address/balances", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"address": c.Param("address")})
	})

	for _, addr := range []string{"0x01", "0x02", "0x03"} {
		serve(router, http.MethodGet, "/api/v1/accounts/"+addr+"/balances")
	}
	serve(router, http.MethodGet, "/does/not/exist")

	assert.Equal(t, float64(3), counterValue(t, registry, "swappy_http_requests_total",
		map[string]string{"path": "/api/v1/accounts/:address/balances"}))
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_http_requests_total",
		map[string]string{"path": "unmatched", "status": "404"}))
}

func TestHTTPMetricsMiddleware_InFlightGauge(t *testing.T) {
	_, registry, router := newTestHTTPMetrics(t)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	router.GET("/slow", func(c *gin.Context) {
		close(started)
		<-release
		c.Status(http.StatusOK)
	})

	go func() {
		serve(router, http.MethodGet, "/slow")
		close(done)
	}()
	<-started

	inFlight := findMetric(t, registry, "swappy_http_requests_in_flight", map[string]string{"path": "/slow"})
	require.NotNil(t, inFlight)
	assert.Equal(t, float64(1), inFlight.GetGauge().GetValue())

	close(release)
	<-done

	inFlight = findMetric(t, registry, "swappy_http_requests_in_flight", map[string]string{"path": "/slow"})
	require.NotNil(t, inFlight)
	assert.Equal(t, float64(0), inFlight.GetGauge().GetValue())
}

func TestBusinessMetricsRecorder(t *testing.T) {
	metrics := NewHTTPMetrics()
	registry := prometheus.NewRegistry()
	metrics.MustRegister(registry)
	recorder := NewBusinessMetricsRecorder(metrics)

	recorder.RecordSwapRequest("USDT", "success", 150*time.Millisecond)
	recorder.RecordSwapRequest("USDT", "slippage_exceeded", 90*time.Millisecond)
	recorder.RecordQuote("USDT", "success", 0)
	recorder.RecordInitialization("already_initialized", time.Millisecond)

	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_business_operations_total",
		map[string]string{"operation_type": "swap_request", "category": "USDT", "status": "slippage_exceeded"}))
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_business_operations_total",
		map[string]string{"operation_type": "quote", "status": "success"}))
	assert.Equal(t, float64(1), counterValue(t, registry, "swappy_business_operations_total",
		map[string]string{"operation_type": "initialize", "status": "already_initialized"}))

	// zero durations are counted but not observed
	assert.Nil(t, findMetric(t, registry, "swappy_business_operation_duration_seconds",
		map[string]string{"operation_type": "quote"}))

	var nilRecorder *BusinessMetricsRecorder
	assert.NotPanics(t, func() { nilRecorder.RecordBalanceLookup("success", time.Second) })
}
