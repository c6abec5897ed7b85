package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/incgamma/internal/api/middleware"
	"github.com/GriffinCanCode/incgamma/internal/service"
	"github.com/GriffinCanCode/incgamma/internal/types"
	"github.com/GriffinCanCode/incgamma/pkg/gamma"
)

// Version reported by the health endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry  *service.Registry
	evaluator gamma.Evaluator
	metrics   *HandlerMetrics
}

// NewHandlers creates a new handler set
func NewHandlers(registry *service.Registry, evaluator gamma.Evaluator, metrics *HandlerMetrics) *Handlers {
	return &Handlers{
		registry:  registry,
		evaluator: evaluator,
		metrics:   metrics,
	}
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service":          "incgamma",
		"version":          Version,
		"service_registry": h.registry.Stats(),
		"engine": gin.H{
			"epsilon":        h.evaluator.Epsilon,
			"max_iterations": h.evaluator.MaxIterations,
		},
	})
}

// ListServices lists all registered services, optionally by category
func (h *Handlers) ListServices(c *gin.Context) {
	done := h.metrics.TrackCatalogOperation("list")

	categoryStr := c.Query("category")
	if err := ValidateCategory(categoryStr); err != nil {
		done("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var category *types.Category
	if categoryStr != "" {
		cat := types.Category(categoryStr)
		category = &cat
	}

	services := h.registry.List(category)
	done("success")

	c.JSON(http.StatusOK, gin.H{
		"services": services,
		"stats":    h.registry.Stats(),
	})
}

// GetService returns one service definition
func (h *Handlers) GetService(c *gin.Context) {
	done := h.metrics.TrackCatalogOperation("get")

	serviceID := c.Param("id")
	if err := ValidateID(serviceID, "id"); err != nil {
		done("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider, ok := h.registry.Get(serviceID)
	if !ok {
		done("not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}

	done("success")
	c.JSON(http.StatusOK, provider.Definition())
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestSize)

	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ValidateToolID(req.ToolID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var appCtx *types.Context
	if reqID := middleware.GetRequestID(c); reqID != "" {
		appCtx = &types.Context{RequestID: &reqID}
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, appCtx)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrServiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToolID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
