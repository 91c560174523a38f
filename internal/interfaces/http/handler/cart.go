package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"go.uber.org/zap"
)

// AddCartItemRequest is the add-to-cart payload
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest is the quantity update payload
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// StockCheckRequest optionally names explicit (product, quantity) pairs to
// check; an empty body checks the stored cart instead.
type StockCheckRequest struct {
	Items []StockCheckRequestItem `json:"items" binding:"omitempty,dive"`
}

// StockCheckRequestItem is one pair in an explicit stock check
type StockCheckRequestItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest is the checkout payload
type CheckoutRequest struct {
	AddressID uuid.UUID `json:"address_id" binding:"required"`
}

// CartHandler serves the authenticated user's shopping cart
type CartHandler struct {
	BaseHandler
	cartService *shoppingapp.CartService
	guards      Guards
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *shoppingapp.CartService, guards Guards, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: NewBaseHandler(logger),
		cartService: cartService,
		guards:      guards,
	}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart", h.guards.Auth)
	cart.GET("", h.Get)
	cart.DELETE("", h.Clear)
	cart.POST("/items", h.AddItem)
	cart.PUT("/items/:id", h.UpdateItem)
	cart.DELETE("/items/:id", h.RemoveItem)
	cart.POST("/stock-check", h.StockCheck)
	cart.POST("/checkout", h.Checkout)
}

// Get returns the cart, reconciled against current product availability
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	cart, err := h.cartService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// AddItem adds a product variant to the cart, merging with an existing line
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid cart item payload")
		return
	}

	cart, err := h.cartService.Add(c.Request.Context(), shoppingapp.AddToCartInput{
		UserID:    userID,
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// UpdateItem changes a cart line's quantity
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid quantity payload")
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cart)
}

// RemoveItem deletes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.cartService.Remove(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	if err := h.cartService.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// StockCheck reports per-line availability without mutating anything. With
// explicit items in the body those are checked; otherwise the stored cart is.
func (h *CartHandler) StockCheck(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}

	var req StockCheckRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid stock check payload")
			return
		}
	}

	var result *shoppingapp.StockCheckResponse
	var err error
	if len(req.Items) > 0 {
		items := make([]shoppingapp.StockCheckRequestItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = shoppingapp.StockCheckRequestItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
		}
		result, err = h.cartService.StockCheckItems(c.Request.Context(), items)
	} else {
		result, err = h.cartService.StockCheck(c.Request.Context(), userID)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Checkout converts the cart into an order against the given address
func (h *CartHandler) Checkout(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid checkout payload")
		return
	}

	result, err := h.cartService.Checkout(c.Request.Context(), shoppingapp.CheckoutInput{
		UserID:    userID,
		AddressID: req.AddressID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
