package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/incgamma/internal/testutil"
	"github.com/GriffinCanCode/incgamma/internal/types"
)

type recordedCall struct {
	service, tool, status string
}

type fakeRecorder struct {
	calls []recordedCall
}

func (f *fakeRecorder) RecordServiceCall(service, tool, status string, _ time.Duration) {
	f.calls = append(f.calls, recordedCall{service, tool, status})
}

func TestRegister(t *testing.T) {
	r := NewRegistry(nil)

	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "stats")))
	_, ok := r.Get("stats")
	assert.True(t, ok)

	t.Run("duplicate", func(t *testing.T) {
		assert.Error(t, r.Register(testutil.NewMockServiceProvider(t, "stats")))
	})

	t.Run("empty ID", func(t *testing.T) {
		assert.Error(t, r.Register(testutil.NewMockServiceProvider(t, "")))
	})

	t.Run("dotted ID", func(t *testing.T) {
		assert.Error(t, r.Register(testutil.NewMockServiceProvider(t, "a.b")))
	})

	t.Run("unregister", func(t *testing.T) {
		r.Unregister("stats")
		_, ok := r.Get("stats")
		assert.False(t, ok)
	})
}

func TestList(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "zeta")))
	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "alpha")))

	services := r.List(nil)
	require.Len(t, services, 2)
	assert.Equal(t, "alpha", services[0].ID)
	assert.Equal(t, "zeta", services[1].ID)

	cat := types.CategoryStatistics
	assert.Len(t, r.List(&cat), 2)

	cat = types.CategoryMath
	assert.Empty(t, r.List(&cat))
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	r := NewRegistry(rec)

	provider := testutil.NewMockServiceProvider(t, "stats")
	params := map[string]interface{}{"x": 1.0}
	provider.On("Execute", mock.Anything, "stats.test", params, (*types.Context)(nil)).
		Return(&types.Result{Success: true, Data: map[string]interface{}{"result": 2.0}}, nil).Once()
	provider.On("Execute", mock.Anything, "stats.broken", mock.Anything, mock.Anything).
		Return(nil, errors.New("boom")).Once()
	require.NoError(t, r.Register(provider))

	result, err := r.Execute(ctx, "stats.test", params, nil)
	require.NoError(t, err)
	testutil.AssertSuccess(t, result)

	_, err = r.Execute(ctx, "stats.broken", nil, nil)
	assert.EqualError(t, err, "boom")

	provider.AssertExpectations(t)
	assert.Equal(t, []recordedCall{
		{"stats", "stats.test", "success"},
		{"stats", "stats.broken", "error"},
	}, rec.calls)
}

func TestExecuteRoutingErrors(t *testing.T) {
	r := NewRegistry(nil)

	result, err := r.Execute(context.Background(), "nodot", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidToolID)
	testutil.AssertError(t, result)

	result, err = r.Execute(context.Background(), "missing.tool", nil, nil)
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.Equal(t, "service not found: missing", *result.Error)
}

func TestExecuteCancelledContext(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "stats")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, "stats.test", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "one")))
	require.NoError(t, r.Register(testutil.NewMockServiceProvider(t, "two")))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 2, stats["total_tools"])
	assert.Equal(t, map[string]int{string(types.CategoryStatistics): 2}, stats["categories"])
}
