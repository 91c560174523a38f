package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/storefront/backend/internal/application/order"
	"go.uber.org/zap"
)

// UpdateOrderStatusRequest is the admin fulfillment status payload
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest is the admin payment status payload
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// OrderListQuery holds admin order listing parameters
type OrderListQuery struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
}

// OrderHandler serves customer order history and admin order management
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
	guards       Guards
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *orderapp.OrderService, guards Guards, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  NewBaseHandler(logger),
		orderService: orderService,
		guards:       guards,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", h.guards.Auth)
	orders.GET("", h.ListMine)
	orders.GET("/:id", h.GetMine)

	admin := rg.Group("/admin/orders", h.guards.Admin)
	admin.GET("", h.List)
	admin.GET("/:id", h.Get)
	admin.PATCH("/:id/status", h.UpdateStatus)
	admin.PATCH("/:id/payment-status", h.UpdatePaymentStatus)
}

// ListMine returns the authenticated user's order history
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	req, ok := h.ParseListRequest(c)
	if !ok {
		return
	}
	orders, total, err := h.orderService.ListForUser(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}

// GetMine returns one of the authenticated user's orders
func (h *OrderHandler) GetMine(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	orderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetForUser(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns all orders, optionally filtered by status
func (h *OrderHandler) List(c *gin.Context) {
	var query OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid listing parameters")
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), orderapp.OrderListFilter{
		Page:          query.Page,
		PageSize:      query.PageSize,
		Status:        query.Status,
		PaymentStatus: query.PaymentStatus,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := query.Page, query.PageSize
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get returns any order by ID
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	order, err := h.orderService.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus advances an order's fulfillment status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status payload")
		return
	}
	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdatePaymentStatus advances an order's payment status
func (h *OrderHandler) UpdatePaymentStatus(c *gin.Context) {
	orderID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid payment status payload")
		return
	}
	order, err := h.orderService.UpdatePaymentStatus(c.Request.Context(), orderID, req.PaymentStatus)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
