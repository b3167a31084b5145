// Package handler provides typed HTTP handlers for the portal API.
//
// Wrap turns a HandlerFunc[C, R] into an http.HandlerFunc: it builds the
// request context, runs the configured binders into R, applies decorators,
// and renders the returned Response. Failures go to a single ErrorHandler,
// which answers with the JSON envelope
//
//	{"error": {"code": "invalid_amount", "message": "Invalid amount"}}
//
// Redirect understands DataStar clients and answers them with an SSE
// redirect event instead of a 3xx status.
package handler
