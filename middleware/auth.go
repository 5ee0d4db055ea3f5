package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sandeshj07/event-management-backend/config"
	"github.com/sandeshj07/event-management-backend/internal/auth"
)

// AuthMiddleware validates the bearer token and stores the resolved actor
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := actorFromRequest(c, cfg, authSvc)
		if err != "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err})
			return
		}

		c.Set("actor", actor)
		c.Set("user_id", actor.UserID)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present but lets
// anonymous requests through. Public catalog pages use it so the view can
// still report the viewer's registration state.
func OptionalAuth(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if actor, errMsg := actorFromRequest(c, cfg, authSvc); errMsg == "" {
				c.Set("actor", actor)
				c.Set("user_id", actor.UserID)
			}
		}
		c.Next()
	}
}

func actorFromRequest(c *gin.Context, cfg *config.Config, authSvc auth.Service) (Actor, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return Actor{}, "missing Authorization header"
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Actor{}, "invalid Authorization header"
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTAccessSecret), nil
	})
	if err != nil || !token.Valid {
		return Actor{}, "invalid token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, "invalid claims"
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return Actor{}, "user_id missing in token"
	}

	// Re-check against the store so deactivated accounts lose access
	// immediately, not at token expiry
	user, err := authSvc.GetUserByID(uint(userIDFloat))
	if err != nil || user.Status != "active" {
		return Actor{}, "user not found"
	}

	return Actor{
		UserID:        user.ID,
		Email:         user.Email,
		IsStaff:       user.IsStaff,
		Authenticated: true,
	}, ""
}
