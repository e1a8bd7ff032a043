package taskqueue

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const defaultMaxRetries = 3

// backoffFor returns 100ms, 200ms, 400ms, ... for attempt 1, 2, 3, ...
func backoffFor(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
}

// withRetry runs fn up to maxRetries times with exponential backoff between
// attempts. fn reports whether its error is worth retrying.
func withRetry[T any](ctx context.Context, maxRetries int, operation, taskID string, fn func() (T, bool, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffFor(attempt)
			slog.DebugContext(ctx, "retrying "+operation,
				slog.String("task_id", taskID),
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
			}
		}

		result, retryable, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	slog.ErrorContext(ctx, "all retries exhausted for "+operation,
		slog.String("task_id", taskID),
		slog.Int("max_retries", maxRetries),
		slog.String("error", lastErr.Error()),
	)
	return zero, fmt.Errorf("%s failed after retries: %w", operation, lastErr)
}
