// Package auth implements passwordless sign-in for the member portal.
//
// A visitor posts an email to /api/auth/request-link and receives a
// magic link valid for a short time. Following the link verifies the
// token, burns it through the replay guard, loads or registers the member
// and sets the nc_auth session cookie before redirecting to the dashboard.
// RequireSession protects the authenticated API and exposes the session
// claims through GetSessionFromContext.
package auth
