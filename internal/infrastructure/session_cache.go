package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a redis client from explicit settings. Returns nil
// when no address is configured; the session cache degrades to a no-op and
// the repository remains the source of truth.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// SessionCache keeps the per-user set of active session tokens in redis as a
// write-through cache over the persisted token set. Revocations delete from
// the cache before the caller reports success, so a cached positive never
// outlives a committed revocation. Misses and errors fall back to storage.
type SessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

func sessionKey(userID string) string {
	return fmt.Sprintf("sessions:%s", userID)
}

func (c *SessionCache) Add(ctx context.Context, userID, token string) error {
	if c.client == nil {
		return nil
	}
	key := sessionKey(userID)
	if err := c.client.SAdd(ctx, key, token).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, sessionTokenTTL).Err()
}

func (c *SessionCache) Remove(ctx context.Context, userID, token string) error {
	if c.client == nil {
		return nil
	}
	return c.client.SRem(ctx, sessionKey(userID), token).Err()
}

func (c *SessionCache) RemoveAll(ctx context.Context, userID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, sessionKey(userID)).Err()
}

// Contains reports whether the token is cached as active. The second return
// is false when the cache cannot answer (disabled, unreachable, or a miss
// that may just be an evicted key) and the caller must consult storage.
func (c *SessionCache) Contains(ctx context.Context, userID, token string) (bool, bool) {
	if c.client == nil {
		return false, false
	}
	ok, err := c.client.SIsMember(ctx, sessionKey(userID), token).Result()
	if err != nil || !ok {
		return false, false
	}
	return true, true
}
