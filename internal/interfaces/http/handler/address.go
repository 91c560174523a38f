package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/storefront/backend/internal/application/order"
	"go.uber.org/zap"
)

// AddressRequest is the create/update payload for shipping addresses
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required,notblank,max=100"`
	Phone      string `json:"phone" binding:"max=30"`
	Line1      string `json:"line1" binding:"required,notblank,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	IsDefault  bool   `json:"is_default"`
}

// AddressHandler serves the authenticated user's address book
type AddressHandler struct {
	BaseHandler
	addressService *orderapp.AddressService
	guards         Guards
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(addressService *orderapp.AddressService, guards Guards, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		BaseHandler:    NewBaseHandler(logger),
		addressService: addressService,
		guards:         guards,
	}
}

// RegisterRoutes registers address routes
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/addresses", h.guards.Auth)
	addresses.GET("", h.List)
	addresses.POST("", h.Create)
	addresses.PUT("/:id", h.Update)
	addresses.PATCH("/:id/default", h.SetDefault)
	addresses.DELETE("/:id", h.Delete)
}

// List returns the user's addresses, default first
func (h *AddressHandler) List(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, addresses)
}

// Create adds an address. The first address becomes the default.
func (h *AddressHandler) Create(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid address payload")
		return
	}
	address, err := h.addressService.Create(c.Request.Context(), userID, toAddressInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, address)
}

// Update replaces an address's fields
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid address payload")
		return
	}
	address, err := h.addressService.Update(c.Request.Context(), userID, addressID, toAddressInput(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, address)
}

// SetDefault makes the address the user's single default
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.addressService.SetDefault(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete removes an address that no order references
func (h *AddressHandler) Delete(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	addressID, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func toAddressInput(req AddressRequest) orderapp.AddressInput {
	return orderapp.AddressInput{
		FullName:   req.FullName,
		Phone:      req.Phone,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
}
