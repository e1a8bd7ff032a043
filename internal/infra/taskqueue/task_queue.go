package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

type TaskQueue interface {
	// RegisterWake schedules a callback to the reminder run endpoint.
	RegisterWake(ctx context.Context, task *WakeTask) (*TaskResponse, error)
	// RegisterNotification enqueues an immediate push delivery.
	RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error)
	// DeleteTask removes a pending task. A task that no longer exists is not an error.
	DeleteTask(ctx context.Context, taskID string) error
}
