package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/incgamma/internal/types"
)

// Routing errors returned by Execute
var (
	ErrInvalidToolID   = errors.New("invalid tool ID format")
	ErrServiceNotFound = errors.New("service not found")
)

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// Recorder receives timing for every routed tool call
type Recorder interface {
	RecordServiceCall(service, tool, status string, duration time.Duration)
}

// Registry manages service lookup and execution
type Registry struct {
	services sync.Map
	recorder Recorder
}

// NewRegistry creates a new service registry. recorder may be nil.
func NewRegistry(recorder Recorder) *Registry {
	return &Registry{recorder: recorder}
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	if strings.Contains(def.ID, ".") {
		return fmt.Errorf("service ID cannot contain '.': %s", def.ID)
	}

	if _, loaded := r.services.LoadOrStore(def.ID, provider); loaded {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	return nil
}

// Unregister removes a service provider
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns registered services sorted by ID, optionally filtered by category
func (r *Registry) List(category *types.Category) []types.Service {
	services := []types.Service{}
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})

	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute runs a service tool. Unroutable tool IDs produce both a failed
// result and an error.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, _, found := strings.Cut(toolID, ".")
	if !found || serviceID == "" {
		return failure(ErrInvalidToolID.Error()), fmt.Errorf("%w: %s", ErrInvalidToolID, toolID)
	}

	provider, ok := r.Get(serviceID)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
		return failure(err.Error()), err
	}

	if err := ctx.Err(); err != nil {
		return failure(err.Error()), err
	}

	start := time.Now()
	result, err := provider.Execute(ctx, toolID, params, appCtx)
	r.record(serviceID, toolID, status(result, err), time.Since(start))

	return result, err
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func (r *Registry) record(service, tool, status string, d time.Duration) {
	if r.recorder != nil {
		r.recorder.RecordServiceCall(service, tool, status, d)
	}
}

func status(result *types.Result, err error) string {
	switch {
	case err != nil:
		return "error"
	case result == nil || !result.Success:
		return "failure"
	default:
		return "success"
	}
}

func failure(msg string) *types.Result {
	return &types.Result{Success: false, Error: &msg}
}
