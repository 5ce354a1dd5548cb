package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker guards a task run across service instances
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

const lockKeyPrefix = "smartcontent:scheduler:lock:"

// releaseScript deletes the lock only if this instance still owns it
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

type redisLocker struct {
	client     *redis.Client
	instanceID string
}

// NewRedisLocker creates a SetNX-based leader lock
func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{
		client:     client,
		instanceID: uuid.NewString(),
	}
}

// lockTTL derives the lock expiry from the task interval: slightly under
// the interval so a crashed holder frees the lock before the next scheduled
// run, with a floor for very short intervals.
func lockTTL(interval time.Duration) time.Duration {
	ttl := interval - 30*time.Second
	if ttl < 10*time.Second {
		ttl = 10 * time.Second
	}
	return ttl
}

func (l *redisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, lockKeyPrefix+name, l.instanceID, lockTTL(ttl)).Result()
}

func (l *redisLocker) Release(ctx context.Context, name string) error {
	return releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + name}, l.instanceID).Err()
}
