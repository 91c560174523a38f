package handler

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"
	preorderapp "github.com/storefront/backend/internal/application/preorder"
	"go.uber.org/zap"
)

// UpdatePreorderStatusRequest is the admin preorder status payload
type UpdatePreorderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PreorderListQuery holds admin preorder listing parameters
type PreorderListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status"`
}

// PreorderHandler serves customer preorder requests and admin review of them
type PreorderHandler struct {
	BaseHandler
	preorderService *preorderapp.PreorderService
	guards          Guards
}

// NewPreorderHandler creates a new preorder handler
func NewPreorderHandler(preorderService *preorderapp.PreorderService, guards Guards, logger *zap.Logger) *PreorderHandler {
	return &PreorderHandler{
		BaseHandler:     NewBaseHandler(logger),
		preorderService: preorderService,
		guards:          guards,
	}
}

// RegisterRoutes registers preorder routes
func (h *PreorderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	preorders := rg.Group("/preorders", h.guards.Auth)
	preorders.POST("", h.Submit)
	preorders.GET("", h.ListMine)

	admin := rg.Group("/admin/preorders", h.guards.Admin)
	admin.GET("", h.List)
	admin.PATCH("/:id/status", h.UpdateStatus)
	admin.DELETE("/:id", h.Delete)
}

// Submit files a preorder request. Expects a multipart form with item_name,
// description and up to three image files under "images".
func (h *PreorderHandler) Submit(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Expected a multipart form")
		return
	}
	itemName := c.PostForm("item_name")
	if itemName == "" {
		h.BadRequest(c, "item_name is required")
		return
	}

	var files []multipart.File
	images := make([]preorderapp.ImageUpload, 0, len(form.File["images"]))
	for _, header := range form.File["images"] {
		file, err := header.Open()
		if err != nil {
			h.BadRequest(c, "Unreadable image upload")
			closeFiles(files)
			return
		}
		files = append(files, file)
		images = append(images, preorderapp.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}
	defer closeFiles(files)

	preorder, err := h.preorderService.Submit(c.Request.Context(), preorderapp.SubmitInput{
		UserID:      userID,
		ItemName:    itemName,
		Description: c.PostForm("description"),
		Images:      images,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, preorder)
}

// ListMine returns the authenticated user's preorder requests
func (h *PreorderHandler) ListMine(c *gin.Context) {
	userID, ok := h.SessionUserID(c)
	if !ok {
		return
	}
	req, ok := h.ParseListRequest(c)
	if !ok {
		return
	}
	preorders, err := h.preorderService.ListForUser(c.Request.Context(), userID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preorders)
}

// List returns all preorder requests, optionally filtered by status
func (h *PreorderHandler) List(c *gin.Context) {
	var query PreorderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid listing parameters")
		return
	}
	preorders, total, err := h.preorderService.List(c.Request.Context(), query.Status, query.Page, query.PageSize)
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
	h.SuccessWithMeta(c, preorders, total, page, pageSize)
}

// UpdateStatus moves a preorder request through review
func (h *PreorderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	var req UpdatePreorderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status payload")
		return
	}
	preorder, err := h.preorderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preorder)
}

// Delete removes a preorder request and its stored images
func (h *PreorderHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.preorderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func closeFiles(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
