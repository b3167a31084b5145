// Package ratelimit throttles requests per key with token buckets from
// golang.org/x/time/rate.
//
// The portal limits the sign-in link endpoint per client IP so that it
// cannot be used to flood an inbox:
//
//	limiter, err := ratelimit.New(cfg)
//	r.With(ratelimit.Middleware(limiter, ratelimit.ByIP)).Post("/request-link", h)
//
// Buckets live in process memory. Buckets that have refilled completely are
// evicted periodically.
package ratelimit
