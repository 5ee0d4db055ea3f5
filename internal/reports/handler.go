package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandeshj07/event-management-backend/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ExportRoster - GET /admin/reports/events/:id/roster?format=csv (staff only)
func (h *Handler) ExportRoster(c *gin.Context) {
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

	format := c.DefaultQuery("format", FormatCSV)
	ip := middleware.GetIPFromContext(c)
	data, filename, mime, err := h.Service.ExportRoster(c.Request.Context(), uint(eventID), format, actor, ip)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to export roster"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mime, data)
}

// ExportAttendanceSummary - GET /admin/reports/attendance?format=excel (staff only)
func (h *Handler) ExportAttendanceSummary(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	ip := middleware.GetIPFromContext(c)
	data, filename, mime, err := h.Service.ExportAttendanceSummary(c.Request.Context(), format, actor, ip)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to export attendance summary"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mime, data)
}

// ExportCoinSummary - GET /admin/reports/coins?format=pdf (staff only)
func (h *Handler) ExportCoinSummary(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	format := c.DefaultQuery("format", FormatCSV)
	ip := middleware.GetIPFromContext(c)
	data, filename, mime, err := h.Service.ExportCoinSummary(c.Request.Context(), format, actor, ip)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to export coin summary"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, mime, data)
}
