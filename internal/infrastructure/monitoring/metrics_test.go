package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEvaluation(t *testing.T) {
	m := NewMetrics()

	m.RecordEvaluation("P", "series", "ok", 17)
	m.RecordEvaluation("P", "series", "ok", 20)
	m.RecordEvaluation("Q", "none", "undefined", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("P", "series", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues("Q", "none", "undefined")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.EvaluationIterations))
}

func TestIndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordServiceCall("math", "math.gamma.p", "success", 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ServiceCalls.WithLabelValues("math", "math.gamma.p", "success")))
	assert.Equal(t, 0, testutil.CollectAndCount(b.ServiceCalls))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/health", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "incgamma_http_requests_total")
}

func TestTimer(t *testing.T) {
	m := NewMetrics()

	timer := NewTimer(m, "math", "math.lgamma")
	timer.Stop("success")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ServiceCalls.WithLabelValues("math", "math.lgamma", "success")))
}
