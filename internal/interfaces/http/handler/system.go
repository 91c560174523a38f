package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// SystemHandler serves health and readiness probes
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	readiness func() error
}

// NewSystemHandler creates a new system handler. readiness is probed on
// /ready and may be nil.
func NewSystemHandler(logger *zap.Logger, readiness func() error) *SystemHandler {
	return &SystemHandler{
		BaseHandler: NewBaseHandler(logger),
		startTime:   time.Now(),
		readiness:   readiness,
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health reports liveness and uptime
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Ready reports whether downstream dependencies are reachable
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.readiness != nil {
		if err := h.readiness(); err != nil {
			h.logger.Warn("Readiness probe failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Dependencies unavailable"))
			return
		}
	}
	h.Success(c, gin.H{"status": "ready"})
}
