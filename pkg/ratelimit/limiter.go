package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Result describes the outcome of Allow.
type Result struct {
	Allowed    bool
	Limit      int
	Window     time.Duration
	RetryAfter time.Duration
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	cfg   Config
	limit rate.Limit
	now   func() time.Time

	mu          sync.Mutex
	buckets     map[string]*rate.Limiter
	idleAfter   time.Duration
	lastCleanup time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIdleEviction sets how often full (idle) buckets are dropped.
func WithIdleEviction(d time.Duration) Option {
	return func(l *Limiter) {
		if d > 0 {
			l.idleAfter = d
		}
	}
}

// New validates cfg and returns a Limiter.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if cfg.Requests <= 0 || cfg.Burst <= 0 {
		return nil, ErrInvalidLimit
	}
	if cfg.Window <= 0 {
		return nil, ErrInvalidInterval
	}

	l := &Limiter{
		cfg:       cfg,
		limit:     rate.Limit(float64(cfg.Requests) / cfg.Window.Seconds()),
		now:       time.Now,
		buckets:   make(map[string]*rate.Limiter),
		idleAfter: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.lastCleanup = l.now()
	return l, nil
}

// Allow takes one token from the bucket of key.
func (l *Limiter) Allow(key string) Result {
	now := l.now()

	l.mu.Lock()
	l.evictIdle(now)
	b, ok := l.buckets[key]
	if !ok {
		b = rate.NewLimiter(l.limit, l.cfg.Burst)
		l.buckets[key] = b
	}
	l.mu.Unlock()

	res := Result{Limit: l.cfg.Requests, Window: l.cfg.Window}
	if b.AllowN(now, 1) {
		res.Allowed = true
		return res
	}

	r := b.ReserveN(now, 1)
	res.RetryAfter = r.DelayFrom(now)
	r.CancelAt(now)
	return res
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// evictIdle drops buckets that refilled completely. Caller holds l.mu.
func (l *Limiter) evictIdle(now time.Time) {
	if now.Sub(l.lastCleanup) < l.idleAfter {
		return
	}
	l.lastCleanup = now
	for key, b := range l.buckets {
		if b.TokensAt(now) >= float64(l.cfg.Burst) {
			delete(l.buckets, key)
		}
	}
}
