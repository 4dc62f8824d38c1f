package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
	"github.com/urmu/storefront/internal/session"
)

// Context keys set by the auth middleware
const (
	ContextSessionID = "session_id"
	ContextUserRole  = "user_role"
)

// Client-facing rejection messages
const (
	msgLoginRequired  = "ابتدا وارد حساب کاربری شوید"
	msgBadAuthHeader  = "فرمت هدر احراز هویت نامعتبر است"
	msgTokenExpired   = "نشست شما منقضی شده است، دوباره وارد شوید"
	msgTokenInvalid   = "توکن نامعتبر است"
	msgSessionInvalid = "نشست شما معتبر نیست، دوباره وارد شوید"
	msgAccessDenied   = "دسترسی به این بخش مجاز نیست"
	msgAuthzFailed    = "خطا در بررسی دسترسی"
)

// AuthMiddleware validates the storefront session token and injects the
// session into the request context. With optional set, requests without a
// usable token continue as guests and casbin decides what a guest may reach.
func AuthMiddleware(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository, optional bool) gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		reject := func(msg string) {
			if optional {
				c.Set(ContextUserRole, domain.RoleGuest)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			reject(msgLoginRequired)
			return
		}

		tokenParts := strings.SplitN(authHeader, " ", 2)
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			reject(msgBadAuthHeader)
			return
		}

		claims, err := tokenSvc.ValidateSessionToken(tokenParts[1])
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				reject(msgTokenExpired)
			} else {
				reject(msgTokenInvalid)
			}
			return
		}

		// the token is only a pointer; logout or expiry removes the session itself
		sess, err := sessionRepo.FindByID(c.Request.Context(), claims.SessionID)
		if err != nil || sess == nil {
			reject(msgSessionInvalid)
			return
		}
		if sess.Phone != claims.Phone {
			reject(msgSessionInvalid)
			return
		}

		ctx := session.NewContext(c.Request.Context(), sess)
		c.Set(ContextSessionID, sess.ID)
		c.Set(ContextUserRole, session.Role(ctx))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
}
