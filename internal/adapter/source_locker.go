package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"istqb-quiz/internal/cache"
	"istqb-quiz/internal/domain"
	"istqb-quiz/internal/util"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisSourceLocker guards per-source ingestion across processes with SET NX.
type RedisSourceLocker struct {
	client *redis.Client
}

func NewRedisSourceLocker(client *redis.Client) *RedisSourceLocker {
	return &RedisSourceLocker{client: client}
}

func (l *RedisSourceLocker) Acquire(ctx context.Context, sourceID string, ttl time.Duration) (func(), bool, error) {
	key := cache.SourceLockKey(sourceID)
	token := util.NewULID()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
		})
	}
	return unlock, true, nil
}

// MemorySourceLocker serializes sources within one process. The ttl is ignored.
type MemorySourceLocker struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewMemorySourceLocker() *MemorySourceLocker {
	return &MemorySourceLocker{active: make(map[string]struct{})}
}

func (l *MemorySourceLocker) Acquire(_ context.Context, sourceID string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.active[sourceID]; held {
		return nil, false, nil
	}
	l.active[sourceID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.active, sourceID)
			l.mu.Unlock()
		})
	}, true, nil
}

var (
	_ domain.SourceLocker = (*RedisSourceLocker)(nil)
	_ domain.SourceLocker = (*MemorySourceLocker)(nil)
)
