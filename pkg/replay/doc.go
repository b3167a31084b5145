// Package replay keeps track of one-time values so that each one can be
// consumed at most once while it is still live.
//
// A Store records keys with a bounded lifetime. MemoryStore keeps them in
// process memory and suits a single instance; RedisStore uses SET NX with a
// millisecond expiry so that several instances share one view.
//
// Guard sits on top of a Store and is used by the sign-in flow: the key is the
// signature of a magic-link token and the lifetime is whatever is left until
// the token expires, so nothing outlives the token it protects.
//
//	guard := replay.NewGuard(replay.NewMemoryStore())
//	if err := guard.Use(ctx, token.Signature(tok), claims.ExpiresAt()); err != nil {
//	    // replay.ErrAlreadyUsed: the link was already followed
//	}
package replay
