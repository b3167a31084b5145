package replay

import (
	"context"
	"errors"
	"time"
)

// Guard enforces single use of values that expire at a known instant.
type Guard struct {
	store Store
	now   func() time.Time
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithGuardClock overrides the time source.
func WithGuardClock(now func() time.Time) GuardOption {
	return func(g *Guard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGuard creates a Guard over store.
func NewGuard(store Store, opts ...GuardOption) *Guard {
	g := &Guard{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Use consumes key until expiresAt. A second call with the same key before
// that instant returns ErrAlreadyUsed. An already expired key is reported as
// used as well.
func (g *Guard) Use(ctx context.Context, key string, expiresAt time.Time) error {
	if key == "" {
		return ErrKeyRequired
	}

	ttl := expiresAt.Sub(g.now())
	if ttl <= 0 {
		return ErrAlreadyUsed
	}

	first, err := g.store.Consume(ctx, key, ttl)
	if err != nil {
		if errors.Is(err, ErrStoreFailure) {
			return err
		}
		return errors.Join(ErrStoreFailure, err)
	}
	if !first {
		return ErrAlreadyUsed
	}
	return nil
}
