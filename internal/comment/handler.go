package comment

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

// Add - POST /events/:id/comments
func (h *Handler) Add(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	comment, err := h.Service.Add(c.Request.Context(), uint(eventID), &req, actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event or parent comment not found"})
		case errors.Is(err, ErrEmptyBody), errors.Is(err, ErrParentMismatch), errors.Is(err, ErrNestedReply):
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to add comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "comment added", "comment": comment})
}

// ListByEvent - GET /events/:id/comments (anonymous OK)
func (h *Handler) ListByEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	comments, err := h.Service.ListByEvent(c.Request.Context(), uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Delete - DELETE /comments/:id
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	commentID, err := strconv.Atoi(c.Param("id"))
	if err != nil || commentID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Delete(c.Request.Context(), uint(commentID), actor, ip); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "comment not found"})
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"severity": "error", "error": err.Error(), "redirect": "/dashboard"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to delete comment"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "comment deleted"})
}
