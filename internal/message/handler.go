package message

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

// Send - POST /messages (authenticated)
func (h *Handler) Send(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	ua := middleware.GetUserAgentFromContext(c)
	msg, err := h.Service.Send(c.Request.Context(), &req, actor, ip, ua)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "message sent to administrators", "admin_message": msg})
}

// Contact - POST /contact (anonymous)
func (h *Handler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	ua := middleware.GetUserAgentFromContext(c)
	msg, err := h.Service.Contact(c.Request.Context(), &req, ip, ua)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "message sent, we will reply by email", "admin_message": msg})
}

// Get - GET /messages/:id (sender or staff)
func (h *Handler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return
	}

	msg, err := h.Service.GetByID(c.Request.Context(), uint(id), actor)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "message not found"})
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"severity": "error", "error": err.Error(), "redirect": "/dashboard"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to load message"})
		}
		return
	}

	c.JSON(http.StatusOK, msg)
}

// Inbox - GET /admin/messages (staff only, optional ?status= filter)
func (h *Handler) Inbox(c *gin.Context) {
	msgs, err := h.Service.Inbox(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// MyMessages - GET /messages/mine
func (h *Handler) MyMessages(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	msgs, err := h.Service.MyMessages(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// Respond - POST /admin/messages/:id/respond (staff only)
func (h *Handler) Respond(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message ID"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	msg, err := h.Service.Respond(c.Request.Context(), uint(id), req.Response, actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "message not found"})
		case errors.Is(err, ErrAlreadyResponded):
			c.JSON(http.StatusConflict, gin.H{"severity": "warning", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to respond to message"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "response sent", "admin_message": msg})
}
