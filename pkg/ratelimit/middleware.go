package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// LimitHandler writes the response for a rejected request.
type LimitHandler func(w http.ResponseWriter, r *http.Request, res Result)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onLimit LimitHandler
}

// WithOnLimitReached replaces the default 429 JSON response.
func WithOnLimitReached(fn LimitHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimit = fn
		}
	}
}

// Middleware rejects requests whose key has run out of tokens.
func Middleware(l *Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}

	cfg := &middlewareConfig{onLimit: defaultOnLimit}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Allow(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Window", res.Window.String())
			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(res)))
				cfg.onLimit(w, r, res)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(res Result) int {
	s := int(res.RetryAfter.Seconds())
	if res.RetryAfter > 0 && float64(s) < res.RetryAfter.Seconds() {
		s++
	}
	return max(s, 1)
}

func defaultOnLimit(w http.ResponseWriter, _ *http.Request, _ Result) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    "rate_limit_exceeded",
			"message": "Too many requests. Please try again later.",
		},
	})
}
