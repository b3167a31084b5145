// Package dashboard serves the authenticated member API: profile, token
// balance and transactions, directory listings, and events.
//
// Every route expects the session claims placed in the request context by
// auth.Service.RequireSession.
package dashboard
