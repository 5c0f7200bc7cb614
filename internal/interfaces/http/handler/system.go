package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the backing store is reachable
type HealthChecker interface {
	Ping() error
}

// SystemHandler serves health and system info endpoints
type SystemHandler struct {
	BaseHandler
	checker   HealthChecker
	startTime time.Time
}

// NewSystemHandler creates a system handler
func NewSystemHandler(checker HealthChecker) *SystemHandler {
	return &SystemHandler{
		checker:   checker,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/health", h.Health)
		system.GET("/info", h.Info)
	}
}

// HealthResponse reports service and database health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health reports liveness and database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	if h.checker != nil {
		if err := h.checker.Ping(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			c.JSON(503, map[string]any{"success": false, "data": resp})
			return
		}
	}
	h.Success(c, resp)
}

// InfoResponse carries basic build and runtime information
type InfoResponse struct {
	Name      string `json:"name"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// Info returns basic system information
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, InfoResponse{
		Name:      "Storefront Backend API",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
