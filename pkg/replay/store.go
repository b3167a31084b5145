package replay

import (
	"context"
	"time"
)

// Store records one-time keys.
type Store interface {
	// Consume marks key as used for ttl. It returns true when the key was
	// not seen before and false when it is still recorded.
	Consume(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
