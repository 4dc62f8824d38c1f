package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/urmu/storefront/domain"
)

// AuthMW wraps the token service and session repository for middleware
type AuthMW struct {
	tokenSvc    domain.TokenService
	sessionRepo domain.SessionRepository
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(tokenSvc domain.TokenService, sessionRepo domain.SessionRepository) *AuthMW {
	return &AuthMW{
		tokenSvc:    tokenSvc,
		sessionRepo: sessionRepo,
	}
}

// Required rejects requests without a valid session
func (mw *AuthMW) Required() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.sessionRepo, false)
}

// Optional lets requests without a usable token through as guests
func (mw *AuthMW) Optional() gin.HandlerFunc {
	return AuthMiddleware(mw.tokenSvc, mw.sessionRepo, true)
}
