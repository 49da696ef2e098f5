package lock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "reminder:sweep:lock"
	DefaultTTL = 5 * time.Minute
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another replica is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a cross-replica sweep lock backed by SET NX PX. The TTL
// bounds how long a crashed holder can block other replicas.
type RedisLocker struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

func NewRedisLocker(client redis.UniversalClient, key string, ttl time.Duration) *RedisLocker {
	if key == "" {
		key = DefaultKey
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisLocker{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (l *RedisLocker) TryLock(ctx context.Context) (func(), bool, error) {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire redis lock: %w", err)
	}

	if !ok {
		slog.DebugContext(ctx, "sweep lock held by another replica",
			slog.String("key", l.key),
		)

		return nil, false, nil
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
			slog.WarnContext(ctx, "failed to release sweep lock, it will expire",
				slog.String("key", l.key),
				slog.Duration("ttl", l.ttl),
				slog.String("error", err.Error()),
			)
		}
	}

	return release, true, nil
}
