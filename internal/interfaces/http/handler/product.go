package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// ProductRequest is the create/update payload for products
type ProductRequest struct {
	Name          string           `json:"name" binding:"required,notblank,max=200"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"original_price"`
	Stock         int              `json:"stock" binding:"min=0"`
	BrandID       *uuid.UUID       `json:"brand_id"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	ImageURL      string           `json:"image_url"`
	Colors        []string         `json:"colors"`
	Sizes         []string         `json:"sizes"`
}

// ProductListQuery holds product listing query parameters
type ProductListQuery struct {
	Page       int     `form:"page" binding:"omitempty,min=1"`
	PageSize   int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string  `form:"search"`
	BrandID    *string `form:"brand_id" binding:"omitempty,uuid"`
	CategoryID *string `form:"category_id" binding:"omitempty,uuid"`
	MinPrice   *string `form:"min_price"`
	MaxPrice   *string `form:"max_price"`
	InStock    *bool   `form:"in_stock"`
	SortBy     string  `form:"sort_by" binding:"omitempty,oneof=price name rating created_at"`
	Order      string  `form:"order" binding:"omitempty,oneof=asc desc"`
}

// ProductHandler serves the public catalog and admin product management
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	guards         Guards
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *catalogapp.ProductService, guards Guards, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		BaseHandler:    NewBaseHandler(logger),
		productService: productService,
		guards:         guards,
	}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/deals", h.Deals)
	products.GET("/slug/:slug", h.GetBySlug)
	products.GET("/:id", h.Get)

	admin := rg.Group("/admin/products", h.guards.Admin)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// List returns a filtered, paginated product listing
func (h *ProductHandler) List(c *gin.Context) {
	var query ProductListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid listing parameters")
		return
	}

	filter, err := toProductListFilter(query)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Deals returns products currently discounted enough to qualify as deals
func (h *ProductHandler) Deals(c *gin.Context) {
	products, err := h.productService.Deals(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns a single product by ID
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// GetBySlug returns a single product by its URL slug
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create creates a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product payload")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalogapp.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		BrandID:       req.BrandID,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update replaces a product's editable fields
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product payload")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, catalogapp.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Stock:         req.Stock,
		BrandID:       req.BrandID,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		Colors:        req.Colors,
		Sizes:         req.Sizes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func toProductListFilter(query ProductListQuery) (catalogapp.ProductListFilter, error) {
	filter := catalogapp.ProductListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		InStock:  query.InStock,
		SortBy:   query.SortBy,
		SortDesc: query.Order == "desc",
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PageSize == 0 {
		filter.PageSize = 20
	}

	if query.BrandID != nil {
		id, err := uuid.Parse(*query.BrandID)
		if err != nil {
			return filter, err
		}
		filter.BrandID = &id
	}
	if query.CategoryID != nil {
		id, err := uuid.Parse(*query.CategoryID)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if query.MinPrice != nil {
		price, err := decimal.NewFromString(*query.MinPrice)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &price
	}
	if query.MaxPrice != nil {
		price, err := decimal.NewFromString(*query.MaxPrice)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &price
	}
	return filter, nil
}
