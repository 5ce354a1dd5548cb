package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/smartcms/smartcontent/internal/common"
	"github.com/smartcms/smartcontent/internal/domain"
	"github.com/smartcms/smartcontent/internal/middleware"
	"github.com/smartcms/smartcontent/internal/service"
	"github.com/smartcms/smartcontent/pkg/ginutil"
)

// LifecycleHandler handles status transitions, scheduling and the recycle bin
type LifecycleHandler struct {
	service service.LifecycleService
}

// NewLifecycleHandler creates a new LifecycleHandler
func NewLifecycleHandler(service service.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{service: service}
}

// UpdateStatus handles PATCH /content/:id/status
func (h *LifecycleHandler) UpdateStatus(c *gin.Context) {
	var req domain.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.TransitionStatus(c.Request.Context(), c.Param("id"), req.Status, middleware.GetUserID(c), req.Note)
	if err != nil {
		respondServiceError(c, err, "Failed to update content status")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// SchedulePublish handles POST /content/:id/schedule
func (h *LifecycleHandler) SchedulePublish(c *gin.Context) {
	var req domain.SchedulePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	data, err := h.service.SchedulePublish(c.Request.Context(), c.Param("id"), req.PublishAt, middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to schedule content")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// MoveToBin handles POST /content/:id/bin
func (h *LifecycleHandler) MoveToBin(c *gin.Context) {
	if err := h.service.MoveToBin(c.Request.Context(), c.Param("id"), middleware.GetUserID(c)); err != nil {
		respondServiceError(c, err, "Failed to move content to bin")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Restore handles POST /content/:id/restore
func (h *LifecycleHandler) Restore(c *gin.Context) {
	data, err := h.service.Restore(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to restore content")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// HardDelete handles DELETE /content/:id
func (h *LifecycleHandler) HardDelete(c *gin.Context) {
	if err := h.service.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete content")
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// ListBin handles GET /content/bin
func (h *LifecycleHandler) ListBin(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 1)
	limit := ginutil.QueryInt(c, "limit", 20)

	data, meta, err := h.service.ListBin(c.Request.Context(), middleware.GetOrgID(c), page, limit)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch bin content")
		return
	}
	common.SuccessResponse(c, data, meta)
}

// ListStatusAudit handles GET /content/:id/audit
func (h *LifecycleHandler) ListStatusAudit(c *gin.Context) {
	data, err := h.service.ListStatusAudit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch status audit")
		return
	}
	common.SuccessResponse(c, data, nil)
}
