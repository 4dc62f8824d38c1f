package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/session"
)

// Authorizer decides whether a role may call a route
type Authorizer interface {
	Allowed(role, path, method string) (bool, error)
}

// CasbinMW enforces route policies by role
type CasbinMW struct {
	authz Authorizer
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(authz Authorizer) *CasbinMW {
	return &CasbinMW{authz: authz}
}

// Enforce returns the casbin authorization middleware. It must run after the
// auth middleware. Policies match the route pattern, so /orders/:id covers
// every order ID.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			// unmatched route, gin answers 404 itself
			c.Next()
			return
		}

		role := session.Role(c.Request.Context())
		allowed, err := mw.authz.Allowed(role, path, c.Request.Method)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msgAuthzFailed})
			return
		}

		if !allowed {
			if role == domain.RoleGuest {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgLoginRequired})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgAccessDenied})
			return
		}

		c.Next()
	})
}
