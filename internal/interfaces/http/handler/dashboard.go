package handler

import (
	"github.com/gin-gonic/gin"
	dashboardapp "github.com/storefront/backend/internal/application/dashboard"
	"go.uber.org/zap"
)

// DashboardHandler serves back-office aggregate views
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboardapp.DashboardService
	guards           Guards
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *dashboardapp.DashboardService, guards Guards, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		guards:           guards,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/dashboard", h.guards.Admin)
	admin.GET("", h.Overview)
	admin.GET("/customers", h.Customers)
}

// Overview returns the store-wide aggregates for the admin landing page
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, overview)
}

// Customers lists customer accounts with order counts and lifetime spend
func (h *DashboardHandler) Customers(c *gin.Context) {
	req, ok := h.ParseListRequest(c)
	if !ok {
		return
	}
	customers, total, err := h.dashboardService.Customers(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, req.Page, req.PageSize)
}
