package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/tracing"
)

const runLockKeyPrefix = "reminder:lock:"

// Deletes the lock only while it still holds our token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type runLocker struct {
	client *redis.Client

	mu     sync.Mutex
	tokens map[string]string
}

func NewRunLocker(client *redis.Client) domain.RunLocker {
	return &runLocker{
		client: client,
		tokens: make(map[string]string),
	}
}

func (l *runLocker) TryLock(ctx context.Context, installationID string, ttl time.Duration) (bool, error) {
	key := runLockKeyPrefix + installationID
	ctx, span := tracing.StartRedisOperationSpan(ctx, "lock", key)
	defer span.End()

	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		tracing.RecordError(span, err)
		return false, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	if !ok {
		return false, nil
	}

	l.mu.Lock()
	l.tokens[installationID] = token
	l.mu.Unlock()

	return true, nil
}

func (l *runLocker) Unlock(ctx context.Context, installationID string) error {
	l.mu.Lock()
	token, ok := l.tokens[installationID]
	delete(l.tokens, installationID)
	l.mu.Unlock()

	if !ok {
		return domain.ErrLockNotAcquired
	}

	key := runLockKeyPrefix + installationID
	ctx, span := tracing.StartRedisOperationSpan(ctx, "unlock", key)
	defer span.End()

	if err := releaseLockScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		tracing.RecordError(span, err)
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}
