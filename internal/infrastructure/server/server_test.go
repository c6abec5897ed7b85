package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/incgamma/internal/api/middleware"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/config"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/logging"
	"github.com/GriffinCanCode/incgamma/internal/types"
)

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false
	for _, m := range mutate {
		m(cfg)
	}

	s, err := NewServer(cfg, logging.NewNop())
	require.NoError(t, err)
	return s
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) types.Result {
	t.Helper()
	var res types.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s.Handler(), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])

	engine := body["engine"].(map[string]interface{})
	assert.Equal(t, 1e-15, engine["epsilon"])
	assert.Equal(t, float64(config.DefaultServiceMaxIterations), engine["max_iterations"])
}

func TestServices(t *testing.T) {
	s := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodGet, "/services", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Services []types.Service `json:"services"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Services, 1)
		assert.Equal(t, "math", body.Services[0].ID)
	})

	t.Run("filter by category", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodGet, "/services?category=statistics", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"services":[]`)
	})

	t.Run("invalid category", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodGet, "/services?category=Bad!", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodGet, "/services/math", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var def types.Service
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &def))
		assert.Len(t, def.Tools, 9)
	})

	t.Run("get unknown", func(t *testing.T) {
		w := do(t, s.Handler(), http.MethodGet, "/services/physics", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExecute(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	t.Run("P", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math.gamma.p",
			Params: map[string]interface{}{"a": 1, "x": 1},
		})
		require.Equal(t, http.StatusOK, w.Code)

		res := decodeResult(t, w)
		require.True(t, res.Success)
		assert.InDelta(t, 0.6321205588285577, res.Data["result"], 1e-15)
		assert.Equal(t, "series", res.Data["region"])
	})

	t.Run("Q", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math.gamma.q",
			Params: map[string]interface{}{"a": 1, "x": 1},
		})
		res := decodeResult(t, w)
		require.True(t, res.Success)
		assert.InDelta(t, math.Exp(-1), res.Data["result"], 1e-15)
	})

	t.Run("undefined input is a tool failure", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math.gamma.p",
			Params: map[string]interface{}{"a": 0, "x": 1},
		})
		require.Equal(t, http.StatusOK, w.Code)
		res := decodeResult(t, w)
		assert.False(t, res.Success)
		require.NotNil(t, res.Error)
	})

	t.Run("convergence failure is a tool failure", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math.gamma.q",
			Params: map[string]interface{}{"a": 5, "x": 30, "maxIterations": 0},
		})
		res := decodeResult(t, w)
		assert.False(t, res.Success)
		assert.Contains(t, *res.Error, "maximal count (0) exceeded")
	})

	t.Run("unknown service", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "physics.drag",
			Params: map[string]interface{}{},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed tool ID", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
			ToolID: "math",
			Params: map[string]interface{}{},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing params", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/services/execute", map[string]string{"tool_id": "math.gamma.p"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	h := s.Handler()

	do(t, h, http.MethodPost, "/services/execute", types.ExecuteRequest{
		ToolID: "math.gamma.p",
		Params: map[string]interface{}{"a": 3, "x": 2},
	})

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `incgamma_evaluations_total{function="P",outcome="ok",region="series"} 1`)
	assert.Contains(t, body, `incgamma_service_calls_total{service="math",status="success",tool="math.gamma.p"} 1`)
	assert.Contains(t, body, "incgamma_http_requests_total")
}

func TestGzipResponses(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/services", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(plain), "math.gamma.p"))
}

func TestRateLimitEnabled(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 1
		cfg.RateLimit.Burst = 1
	})

	assert.Equal(t, http.StatusOK, do(t, s.Handler(), http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(t, s.Handler(), http.MethodGet, "/health", nil).Code)
}

func TestInvalidEngineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.Epsilon = 0

	_, err := NewServer(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestShutdownBeforeRun(t *testing.T) {
	s := newTestServer(t)
	assert.NoError(t, s.Shutdown(context.Background()))
	assert.Equal(t, "0.0.0.0:8000", s.Addr())
}
