// Package testutil provides testing utilities and helpers for service tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/incgamma/internal/types"
)

// MockObserver is a mock implementation of common.Observer for testing.
type MockObserver struct {
	mock.Mock
}

// RecordEvaluation mocks the RecordEvaluation method.
func (m *MockObserver) RecordEvaluation(function, region, outcome string, iterations int) {
	m.Called(function, region, outcome, iterations)
}

// NewMockObserver creates a mock observer that accepts any evaluation.
func NewMockObserver(t *testing.T) *MockObserver {
	t.Helper()
	m := new(MockObserver)
	m.On("RecordEvaluation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	return m
}

// MockServiceProvider is a mock implementation of service.Provider for testing.
type MockServiceProvider struct {
	mock.Mock
}

// Definition mocks the Definition method.
func (m *MockServiceProvider) Definition() types.Service {
	args := m.Called()
	return args.Get(0).(types.Service)
}

// Execute mocks the Execute method.
func (m *MockServiceProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	args := m.Called(ctx, toolID, params, appCtx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Result), args.Error(1)
}

// NewMockServiceProvider creates a new mock service provider with a simple definition.
func NewMockServiceProvider(t *testing.T, serviceID string) *MockServiceProvider {
	t.Helper()
	m := new(MockServiceProvider)
	m.On("Definition").Return(CreateTestService(t, serviceID, types.CategoryStatistics)).Maybe()
	return m
}

// CreateTestService creates a test service definition.
func CreateTestService(t *testing.T, id string, category types.Category) types.Service {
	t.Helper()

	return types.Service{
		ID:           id,
		Name:         "Test Service",
		Description:  "A test service for unit testing",
		Category:     category,
		Capabilities: []string{"test"},
		Tools: []types.Tool{
			{
				ID:          id + ".test",
				Name:        "test",
				Description: "Test tool",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// AssertSuccess is a helper to assert a successful result.
func AssertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if !result.Success {
		msg := "<nil>"
		if result.Error != nil {
			msg = *result.Error
		}
		t.Fatalf("Expected success, got error: %s", msg)
	}
}

// AssertError is a helper to assert an error result.
func AssertError(t *testing.T, result *types.Result) {
	t.Helper()
	if result == nil {
		t.Fatal("Result is nil")
	}
	if result.Success {
		t.Fatal("Expected error, got success")
	}
	if result.Error == nil {
		t.Fatal("Expected error message, got nil")
	}
}

// ResultNumber returns a float64 data field, failing the test if absent.
func ResultNumber(t *testing.T, result *types.Result, field string) float64 {
	t.Helper()
	AssertSuccess(t, result)

	v, ok := result.Data[field].(float64)
	if !ok {
		t.Fatalf("Field %s: expected float64, got %T", field, result.Data[field])
	}
	return v
}
