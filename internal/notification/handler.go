package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ListMine - GET /notifications
func (h *Handler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.Service.ListMine(c.Request.Context(), actor, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// UnreadCount - GET /notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	count, err := h.Service.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead - PATCH /notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}

	if err := h.Service.MarkRead(c.Request.Context(), uint(id), actor); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "notification not found"})
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"severity": "error", "error": err.Error(), "redirect": "/dashboard"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to mark notification read"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "notification marked read"})
}

// MarkAllRead - POST /notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := h.Service.MarkAllRead(c.Request.Context(), actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark notifications read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "all notifications marked read"})
}

// RegisterDevice - POST /notifications/devices
func (h *Handler) RegisterDevice(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	if err := h.Service.RegisterDevice(c.Request.Context(), &req, actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to register device"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "device registered"})
}

// UnregisterDevice - DELETE /notifications/devices/:token
func (h *Handler) UnregisterDevice(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device token required"})
		return
	}

	if err := h.Service.UnregisterDevice(c.Request.Context(), token, actor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to unregister device"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "device unregistered"})
}

// ListLogs - GET /admin/notifications/logs (staff only)
func (h *Handler) ListLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.Service.ListLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notification logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}
