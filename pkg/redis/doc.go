// Package redis connects to Redis through go-redis with retries and exposes
// a readiness check. The portal uses Redis, when configured, to share the
// single-use record of magic links between instances.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := replay.NewRedisStore(client)
package redis
