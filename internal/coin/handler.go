package coin

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

// Award - POST /admin/coins (staff only)
func (h *Handler) Award(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req AwardCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	award, err := h.Service.Award(c.Request.Context(), &req, actor, ip)
	if err != nil {
		if errors.Is(err, ErrZeroAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"severity": "error", "error": err.Error()})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"severity": "error", "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"severity": "error", "error": "failed to award coins"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"severity": "success", "message": "coins awarded", "award": award})
}

// MyCoins - GET /coins/mine
func (h *Handler) MyCoins(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	awards, balance, err := h.Service.MyCoins(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coins"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"awards": awards, "balance": balance})
}

// ListAll - GET /admin/coins (staff only)
func (h *Handler) ListAll(c *gin.Context) {
	awards, err := h.Service.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list coin awards"})
		return
	}
	c.JSON(http.StatusOK, awards)
}

// UserBalance - GET /admin/coins/users/:id (staff only)
func (h *Handler) UserBalance(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	balance, err := h.Service.BalanceForUser(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "balance": balance})
}
