package client

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/incgamma/internal/infrastructure/config"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/logging"
	"github.com/GriffinCanCode/incgamma/internal/infrastructure/server"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.RateLimit.Enabled = false

	srv, err := server.NewServer(cfg, logging.NewNop())
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return New(ts.URL+"/", WithTimeout(5*time.Second), WithRetry(0, 0, 0))
}

func TestHealthAndServices(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	health, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])

	services, err := c.Services(ctx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "math", services[0].ID)
}

func TestEvaluate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	p, err := c.Evaluate(ctx, gamma.FunctionP, 1, 1, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.6321205588285577, p.Value, 1e-15)
	assert.Equal(t, "series", p.Region)
	assert.Equal(t, 17, p.Iterations)
	assert.False(t, p.Delegated)

	q, err := c.Evaluate(ctx, gamma.FunctionQ, 2, 5, nil)
	require.NoError(t, err)
	assert.InDelta(t, 6*math.Exp(-5), q.Value, 1e-15)
	assert.Equal(t, "fraction", q.Region)
}

func TestEvaluateWithLimits(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	maxIter := 17
	_, err := c.Evaluate(ctx, gamma.FunctionP, 1, 1, &Limits{MaxIterations: &maxIter})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrToolFailed))
	assert.Contains(t, err.Error(), "maximal count (17) exceeded")

	eps := 1e-8
	p, err := c.Evaluate(ctx, gamma.FunctionP, 1, 1, &Limits{Epsilon: &eps})
	require.NoError(t, err)
	assert.Less(t, p.Iterations, 17)
}

func TestExecuteToolFailure(t *testing.T) {
	c := newTestClient(t)

	result, err := c.Execute(context.Background(), "math.gamma.q", map[string]interface{}{"a": -1.0, "x": 1.0})
	require.NoError(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
}

func TestExecuteHTTPError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Execute(context.Background(), "physics.drag", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "service not found")
}

func TestRetriesOnServerError(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithRetry(3, time.Millisecond, 5*time.Millisecond))

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, int32(3), calls.Load())
}

func TestRateLimitHonoursContext(t *testing.T) {
	c := New("http://127.0.0.1:1", WithRateLimit(0.001))

	// The first token is available immediately; the second is not.
	c.limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.Health(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
