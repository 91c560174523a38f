package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"go.uber.org/zap"
)

// AddWishlistRequest is the add-to-wishlist payload
type AddWishlistRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// WishlistHandler serves the authenticated user's wishlist
type WishlistHandler struct {
	BaseHandler
	wishlistService *shoppingapp.WishlistService
	guards          Guards
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *shoppingapp.WishlistService, guards Guards, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		BaseHandler:     NewBaseHandler(logger),
		wishlistService: wishlistService,
		guards:          guards,
	}
}

// RegisterRoutes registers wishlist routes
func (h *WishlistHandler) RegisterRoutes(rg *gin.RouterGroup) {
	wishlist := rg.Group("/wishlist", h.guards.Auth)
	wishlist.GET("", h.List)
	wishlist.POST("", h.Add)
	wishlist.DELETE("/:id", h.Remove)
}

// List returns the wishlist with current product details
func (h *WishlistHandler) List(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	items, err := h.wishlistService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Add puts a product on the wishlist
func (h *WishlistHandler) Add(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	var req AddWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid wishlist payload")
		return
	}
	item, err := h.wishlistService.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Remove takes a product off the wishlist. The :id parameter is the product ID.
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	productID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.wishlistService.Remove(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
