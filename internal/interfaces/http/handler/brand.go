package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// BrandRequest is the create/update payload for brands
type BrandRequest struct {
	Name    string `json:"name" binding:"required,notblank,max=100"`
	LogoURL string `json:"logo_url"`
}

// BrandHandler serves the public brand listing and admin brand management
type BrandHandler struct {
	BaseHandler
	brandService *catalogapp.BrandService
	guards       Guards
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(brandService *catalogapp.BrandService, guards Guards, logger *zap.Logger) *BrandHandler {
	return &BrandHandler{
		BaseHandler:  NewBaseHandler(logger),
		brandService: brandService,
		guards:       guards,
	}
}

// RegisterRoutes registers brand routes
func (h *BrandHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/brands", h.List)

	admin := rg.Group("/admin/brands", h.guards.Admin)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// List returns all brands with their product counts
func (h *BrandHandler) List(c *gin.Context) {
	brands, err := h.brandService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brands)
}

// Create creates a brand
func (h *BrandHandler) Create(c *gin.Context) {
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid brand payload")
		return
	}
	brand, err := h.brandService.Create(c.Request.Context(), catalogapp.BrandInput{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, brand)
}

// Update renames a brand or replaces its logo
func (h *BrandHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid brand payload")
		return
	}
	brand, err := h.brandService.Update(c.Request.Context(), id, catalogapp.BrandInput{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, brand)
}

// Delete removes a brand that no product references
func (h *BrandHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.brandService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
