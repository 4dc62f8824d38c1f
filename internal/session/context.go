// Package session carries the authenticated storefront session through a
// request context.
package session

import (
	"context"

	"github.com/urmu/storefront/domain"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s
func NewContext(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored in ctx, or nil for guests.
func FromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(ctxKey{}).(*domain.Session)
	return s
}

// Role is the session's role, or guest when ctx has no session.
func Role(ctx context.Context) string {
	if s := FromContext(ctx); s != nil && s.Role != "" {
		return s.Role
	}
	return domain.RoleGuest
}
