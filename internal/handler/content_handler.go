package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/middleware"
	"github.com/smartcms/smartcontent/internal/service"
	"github.com/smartcms/smartcontent/pkg/ginutil"
)

// ContentHandler handles HTTP requests for content CRUD, versioning and slugs
type ContentHandler struct {
	service service.ContentService
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(service service.ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// Create handles POST /content
func (h *ContentHandler) Create(c *gin.Context) {
	var req domain.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Create(c.Request.Context(), &req, middleware.GetUserID(c), middleware.GetOrgID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create content")
		return
	}
	common.CreatedResponse(c, data)
}

// Get handles GET /content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	data, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch content")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ListOrg handles GET /content — the org's content excluding binned items
func (h *ContentHandler) ListOrg(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	data, meta, err := h.service.ListOrgContent(c.Request.Context(), middleware.GetOrgID(c), page, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch org content")
		return
	}
	common.SuccessResponse(c, data, meta)
}

// ListByStatus handles GET /content/status/:status
func (h *ContentHandler) ListByStatus(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)
	status := domain.ContentStatus(c.Param("status"))

	data, meta, err := h.service.ListByStatus(c.Request.Context(), middleware.GetOrgID(c), status, page, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch content by status")
		return
	}
	common.SuccessResponse(c, data, meta)
}

// Update handles PATCH /content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	var req domain.UpdateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.UpdateFields(c.Request.Context(), c.Param("id"), &req, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to update content")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ListVersions handles GET /content/:id/versions
func (h *ContentHandler) ListVersions(c *gin.Context) {
	data, err := h.service.ListVersions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch content versions")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// Rollback handles POST /content/:id/rollback
func (h *ContentHandler) Rollback(c *gin.Context) {
	var req domain.RollbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.Rollback(c.Request.Context(), c.Param("id"), req.Version, middleware.GetUserID(c), req.Fields)
	if err != nil {
		respondServiceError(c, err, "Failed to rollback content")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// UpdateSlug handles PATCH /content/:id/slug
func (h *ContentHandler) UpdateSlug(c *gin.Context) {
	var req domain.SlugUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.UpdateSlug(c.Request.Context(), c.Param("id"), req.Slug, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to update slug")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ValidateSlug handles GET /content/:id/slug/validate?slug=...
func (h *ContentHandler) ValidateSlug(c *gin.Context) {
	slug := c.Query("slug")
	if slug == "" {
		common.ErrorResponse(c, 400, "Missing slug query parameter", nil)
		return
	}

	data, err := h.service.ValidateSlug(c.Request.Context(), slug, middleware.GetOrgID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to validate slug")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// GenerateSlug handles POST /content/:id/slug/generate
func (h *ContentHandler) GenerateSlug(c *gin.Context) {
	slug, err := h.service.GenerateUniqueSlug(c.Request.Context(), c.Param("id"), middleware.GetOrgID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to generate slug")
		return
	}
	common.SuccessResponse(c, gin.H{"slug": slug}, nil)
}
