package jobhost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/taskqueue"
)

// Host keeps at most one pending wake task per logical name. The queue cannot
// reuse a task name soon after deleting it, so every arm creates a uniquely
// named task and the wake repository remembers which one is current.
type Host struct {
	queue taskqueue.TaskQueue
	wakes domain.WakeRepository
	now   func() time.Time
}

func NewHost(queue taskqueue.TaskQueue, wakes domain.WakeRepository) *Host {
	return &Host{
		queue: queue,
		wakes: wakes,
		now:   time.Now,
	}
}

// WithClock overrides the time source.
func (h *Host) WithClock(now func() time.Time) *Host {
	h.now = now
	return h
}

func (h *Host) ScheduleOnce(ctx context.Context, name, installationID string, delay time.Duration) (*domain.ScheduledWake, error) {
	if delay < 0 {
		delay = 0
	}
	now := h.now()

	if err := h.dropPrevious(ctx, name, now); err != nil {
		return nil, err
	}

	taskID := newTaskID(name)
	fireAt := now.Add(delay)

	resp, err := h.queue.RegisterWake(ctx, &taskqueue.WakeTask{
		TaskID:         taskID,
		ScheduleAt:     fireAt,
		InstallationID: installationID,
	})
	if err != nil {
		return nil, fmt.Errorf("register wake task: %w", err)
	}
	if resp != nil && !resp.ScheduleTime.IsZero() {
		fireAt = resp.ScheduleTime
	}

	wake := &domain.ScheduledWake{
		Name:           name,
		TaskID:         taskID,
		InstallationID: installationID,
		FireAt:         fireAt,
		ArmedAt:        now,
	}

	if err := h.wakes.SaveWake(ctx, wake); err != nil {
		// An unrecorded task could never be replaced, so take it back.
		if delErr := h.queue.DeleteTask(context.WithoutCancel(ctx), taskID); delErr != nil {
			slog.ErrorContext(ctx, "failed to roll back unrecorded wake task",
				slog.String("task_id", taskID),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, fmt.Errorf("record wake: %w", err)
	}

	slog.InfoContext(ctx, "wake armed",
		slog.String("name", name),
		slog.String("task_id", taskID),
		slog.String("installation_id", installationID),
		slog.Time("fire_at", fireAt),
	)

	return wake, nil
}

func (h *Host) Cancel(ctx context.Context, name string) error {
	prev, err := h.wakes.GetWake(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrWakeNotFound) {
			return nil
		}
		return fmt.Errorf("load wake: %w", err)
	}

	if err := h.queue.DeleteTask(ctx, prev.TaskID); err != nil {
		return fmt.Errorf("delete wake task: %w", err)
	}
	if err := h.wakes.DeleteWake(ctx, name); err != nil {
		return fmt.Errorf("clear wake: %w", err)
	}

	slog.InfoContext(ctx, "wake cancelled",
		slog.String("name", name),
		slog.String("task_id", prev.TaskID),
	)
	return nil
}

// dropPrevious deletes the recorded task unless it has already fired, in which
// case it is the delivery currently being handled.
func (h *Host) dropPrevious(ctx context.Context, name string, now time.Time) error {
	prev, err := h.wakes.GetWake(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrWakeNotFound) {
			return nil
		}
		return fmt.Errorf("load previous wake: %w", err)
	}

	if !prev.FireAt.After(now) {
		return nil
	}

	if err := h.queue.DeleteTask(ctx, prev.TaskID); err != nil {
		return fmt.Errorf("delete previous wake task: %w", err)
	}
	return nil
}

// newTaskID derives a queue-safe task id from the wake name.
func newTaskID(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if len(safe) > 200 {
		safe = safe[:200]
	}
	return safe + "-" + uuid.NewString()
}
