package auth

import (
	"context"

	"github.com/netandconnect/portal/pkg/token"
)

type sessionContextKey struct{}

// SetSessionToContext stores verified session claims.
func SetSessionToContext(ctx context.Context, claims token.SessionClaims) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, claims)
}

// GetSessionFromContext returns the claims stored by RequireSession.
func GetSessionFromContext(ctx context.Context) (token.SessionClaims, bool) {
	claims, ok := ctx.Value(sessionContextKey{}).(token.SessionClaims)
	return claims, ok
}
