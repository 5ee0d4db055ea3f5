package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Actor is the resolved requesting identity. A zero Actor is anonymous.
type Actor struct {
	UserID        uint
	Email         string
	IsStaff       bool
	Authenticated bool
}

// Scope is the access level an actor holds on a specific resource
type Scope int

const (
	Denied Scope = iota
	OwnerOnly
	FullAccess
)

func (s Scope) String() string {
	switch s {
	case FullAccess:
		return "full"
	case OwnerOnly:
		return "owner"
	default:
		return "denied"
	}
}

// Resolve decides what an actor may do with a resource owned by ownerID.
// Staff get full access, owners get owner-only access, everyone else is denied.
func Resolve(actor Actor, ownerID uint) Scope {
	if !actor.Authenticated {
		return Denied
	}
	if actor.IsStaff {
		return FullAccess
	}
	if actor.UserID == ownerID {
		return OwnerOnly
	}
	return Denied
}

// Permits reports whether the scope allows mutating the resource
func (s Scope) Permits() bool {
	return s != Denied
}

// GetActor pulls the resolved actor from gin context. The bool is false
// when no authenticated actor is present.
func GetActor(c *gin.Context) (Actor, bool) {
	raw, exists := c.Get("actor")
	if !exists {
		return Actor{}, false
	}
	actor, ok := raw.(Actor)
	if !ok || !actor.Authenticated {
		return Actor{}, false
	}
	return actor, true
}

// RequireStaff gates a route group to staff accounts. Non-staff get a
// redirect hint to their dashboard instead of a bare error page.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		if !actor.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"severity": "error",
				"error":    "administrator privileges required",
				"redirect": "/dashboard",
			})
			return
		}

		c.Next()
	}
}
