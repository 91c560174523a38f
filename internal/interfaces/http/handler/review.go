package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// SubmitReviewRequest is the review submission payload
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"required,max=200"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ModerateReviewRequest is the admin moderation payload
type ModerateReviewRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReviewListQuery holds admin review listing parameters
type ReviewListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
}

// ReviewHandler serves product reviews and the admin moderation queue
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
	guards        Guards
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *catalogapp.ReviewService, guards Guards, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
		guards:        guards,
	}
}

// RegisterRoutes registers review routes
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products/:id/reviews", h.ListForProduct)
	rg.POST("/products/:id/reviews", h.guards.Auth, h.Submit)

	admin := rg.Group("/admin/reviews", h.guards.Admin)
	admin.GET("", h.List)
	admin.PATCH("/:id/status", h.Moderate)
	admin.DELETE("/:id", h.Delete)
}

// ListForProduct returns the approved reviews of a product
func (h *ReviewHandler) ListForProduct(c *gin.Context) {
	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	reviews, err := h.reviewService.ListApprovedByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, reviews)
}

// Submit files a review for moderation
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid review payload")
		return
	}

	review, err := h.reviewService.Submit(c.Request.Context(), catalogapp.SubmitReviewInput{
		UserID:    userID,
		ProductID: productID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, review)
}

// List returns the moderation queue, defaulting to pending reviews
func (h *ReviewHandler) List(c *gin.Context) {
	var query ReviewListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid listing parameters")
		return
	}
	status := catalog.ReviewStatusPending
	if query.Status != "" {
		status = catalog.ReviewStatus(query.Status)
	}

	reviews, total, err := h.reviewService.ListByStatus(c.Request.Context(), status, query.Page, query.PageSize)
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
	h.SuccessWithMeta(c, reviews, total, page, pageSize)
}

// Moderate approves or rejects a pending review
func (h *ReviewHandler) Moderate(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid moderation payload")
		return
	}
	review, err := h.reviewService.Moderate(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, review)
}

// Delete removes a review and refreshes the product's rating aggregate
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
