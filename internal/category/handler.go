package category

import (
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

type Handler struct {
	Service Service
	Cfg     *config.Config
}

func NewHandler(s Service, cfg *config.Config) *Handler {
	return &Handler{Service: s, Cfg: cfg}
}

// CreateCategory - POST /categories (staff only, multipart form with optional image)
func (h *Handler) CreateCategory(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req CreateCategoryRequest
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
	category, err := h.Service.CreateCategory(c.Request.Context(), &req, imagePath, actor, ip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "category created", "category": category})
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

// ListCategories - GET /categories
func (h *Handler) ListCategories(c *gin.Context) {
	if search := c.Query("search"); search != "" {
		categories, err := h.Service.SearchCategories(c.Request.Context(), search)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
		return
	}

	categories, err := h.Service.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory - GET /categories/:id
func (h *Handler) GetCategory(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
		return
	}

	category, err := h.Service.GetCategoryByID(c.Request.Context(), uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// UpdateCategory - PUT /categories/:id (staff only)
func (h *Handler) UpdateCategory(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	category, err := h.Service.UpdateCategory(c.Request.Context(), uint(id), &req, actor, ip)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "category updated", "category": category})
}

// DeleteCategory - DELETE /categories/:id (staff only)
func (h *Handler) DeleteCategory(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category ID"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.DeleteCategory(c.Request.Context(), uint(id), actor, ip); err != nil {
		if errors.Is(err, ErrCategoryInUse) {
			c.JSON(http.StatusConflict, gin.H{"severity": "warning", "error": "category has events and cannot be deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"severity": "success", "message": "category deleted"})
}
