package event

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sandeshj07/event-management-backend/config"
	"github.com/sandeshj07/event-management-backend/middleware"
)

// RegistrationChecker reports whether a user already holds a seat for an
// event. Satisfied by an adapter over the registration store; kept as an
// interface here to avoid importing it.
type RegistrationChecker interface {
	IsRegistered(ctx context.Context, eventID, userID uint) (bool, error)
}

type Handler struct {
	Service       Service
	Cfg           *config.Config
	Registrations RegistrationChecker
}

func NewHandler(s Service, cfg *config.Config) *Handler {
	return &Handler{Service: s, Cfg: cfg}
}

// CreateEvent - POST /events (staff only, multipart form with optional image)
func (h *Handler) CreateEvent(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		saved, err := h.saveUpload(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to store image"})
			return
		}
		imagePath = saved
	}

	ip := middleware.GetIPFromContext(c)
	event, err := h.Service.CreateEvent(c.Request.Context(), &req, imagePath, actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to create event"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "event created", "event": event})
}

func (h *Handler) saveUpload(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
	dest := filepath.Join(h.Cfg.UploadDir, name)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// ListPublicEvents - GET /events (anonymous OK, active events, paginated)
func (h *Handler) ListPublicEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	search := c.Query("search")

	events, total, err := h.Service.ListPublicEvents(c.Request.Context(), search, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":    events,
		"total":     total,
		"page":      page,
		"page_size": PageSize,
	})
}

// ListEvents - GET /admin/events (staff only, all statuses)
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.Service.ListEvents(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListCompletedEvents - GET /admin/events/completed (staff only)
func (h *Handler) ListCompletedEvents(c *gin.Context) {
	events, err := h.Service.ListCompletedEvents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list completed events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetPublicEvent - GET /events/:id (anonymous OK, active events only)
func (h *Handler) GetPublicEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	event, err := h.Service.GetPublicEvent(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
		return
	}

	images, _ := h.Service.GetEventImages(c.Request.Context(), event.ID)
	agendas, _ := h.Service.GetEventAgendas(c.Request.Context(), event.ID)

	resp := gin.H{
		"event":   event,
		"images":  images,
		"agendas": agendas,
		"is_full": event.IsFull(),
	}

	if actor, ok := middleware.GetActor(c); ok && actor.Authenticated && h.Registrations != nil {
		if registered, err := h.Registrations.IsRegistered(c.Request.Context(), event.ID, actor.UserID); err == nil {
			resp["is_registered"] = registered
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetEvent - GET /admin/events/:id (staff only, any status)
func (h *Handler) GetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	event, err := h.Service.GetEventByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

// UpdateEvent - PUT /events/:id (staff only)
func (h *Handler) UpdateEvent(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	event, err := h.Service.UpdateEvent(c.Request.Context(), uint(id), &req, actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
		case errors.Is(err, ErrInvalidDate), errors.Is(err, ErrInvalidDateRange), errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to update event"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "event updated", "event": event})
}

// UpdateEventStatus - PATCH /events/:id/status (staff only)
func (h *Handler) UpdateEventStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	event, err := h.Service.UpdateEventStatus(c.Request.Context(), uint(id), req.Status, actor, ip)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to update event status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "event status updated", "event": event})
}

// DeleteEvent - DELETE /events/:id (staff only)
func (h *Handler) DeleteEvent(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteEvent(c.Request.Context(), uint(id), actor, ip); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "event deleted"})
}
