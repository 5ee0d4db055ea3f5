package registration

import (
	"errors"
	"fmt"
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

// Join - POST /events/:id/join
func (h *Handler) Join(c *gin.Context) {
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
	result, err := h.Service.Join(c.Request.Context(), uint(eventID), actor, ip)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to join event"})
		return
	}

	occupancy := fmt.Sprintf("%d/%d", result.Count, result.Capacity)
	switch result.Outcome {
	case OutcomeRegistered:
		c.JSON(http.StatusCreated, gin.H{
			"severity":  "success",
			"message":   "registered for event",
			"occupancy": occupancy,
			"result":    result,
		})
	case OutcomeAlreadyRegistered:
		c.JSON(http.StatusOK, gin.H{
			"severity":  "info",
			"message":   "you are already registered for this event",
			"occupancy": occupancy,
			"result":    result,
		})
	case OutcomeCapacityExceeded:
		c.JSON(http.StatusConflict, gin.H{
			"severity":  "warning",
			"message":   fmt.Sprintf("event is full (%s)", occupancy),
			"occupancy": occupancy,
			"result":    result,
		})
	}
}

// Cancel - DELETE /registrations/:id
func (h *Handler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil || memberID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.Cancel(c.Request.Context(), uint(memberID), actor, ip); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "registration not found"})
		case errors.Is(err, ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"severity": "error", "error": err.Error(), "redirect": "/dashboard"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to cancel registration"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "registration cancelled"})
}

// MyRegistrations - GET /registrations/mine
func (h *Handler) MyRegistrations(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	members, err := h.Service.MyRegistrations(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// ListEventMembers - GET /admin/events/:id/members (staff only, optional ?status= filter)
func (h *Handler) ListEventMembers(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("id"))
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var members []EventMember
	if status := c.Query("status"); status != "" {
		members, err = h.Service.ListEventMembersByStatus(c.Request.Context(), uint(eventID), status)
	} else {
		members, err = h.Service.ListEventMembers(c.Request.Context(), uint(eventID))
	}
	if err != nil {
		if errors.Is(err, ErrInvalidAttendStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// UpdateAttendance - PATCH /admin/registrations/:id/attendance (staff only)
func (h *Handler) UpdateAttendance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("id"))
	if err != nil || memberID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration ID"})
		return
	}

	var req UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	member, err := h.Service.UpdateAttendance(c.Request.Context(), uint(memberID), req.AttendStatus, actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "registration not found"})
		case errors.Is(err, ErrInvalidAttendStatus):
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to update attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "attendance updated", "member": member})
}
