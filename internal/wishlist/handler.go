package wishlist

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

// Add - POST /events/:id/wishlist
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

	ip := middleware.GetIPFromContext(c)
	item, err := h.Service.Add(c.Request.Context(), uint(eventID), actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
		case errors.Is(err, ErrAlreadyWishlisted):
			c.JSON(http.StatusOK, gin.H{"severity": "info", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to add to wishlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "event added to wishlist", "item": item})
}

// Remove - DELETE /wishlist/:id
func (h *Handler) Remove(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil || itemID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist item ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Remove(c.Request.Context(), uint(itemID), actor, ip); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "wishlist item not found"})
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"severity": "error", "error": err.Error(), "redirect": "/dashboard"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to remove from wishlist"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "event removed from wishlist"})
}

// MyWishlist - GET /wishlist/mine
func (h *Handler) MyWishlist(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	items, err := h.Service.MyWishlist(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wishlist"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// ListAll - GET /admin/wishlist (staff only)
func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wishlist entries"})
		return
	}

	c.JSON(http.StatusOK, items)
}
