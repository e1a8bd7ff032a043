package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/taskqueue"
)

const TaskTypeSmartReminder = "smart_reminder"

// QueueNotifier hands reminders to the push delivery service through the task
// queue. Delivery itself is asynchronous; Send only confirms the handoff.
type QueueNotifier struct {
	queue taskqueue.TaskQueue
}

func NewQueueNotifier(queue taskqueue.TaskQueue) *QueueNotifier {
	return &QueueNotifier{queue: queue}
}

func (n *QueueNotifier) Send(ctx context.Context, installationID string, msg domain.Message) error {
	task := &taskqueue.NotificationTask{
		TaskID:         "notify-" + uuid.NewString(),
		InstallationID: installationID,
		TaskType:       TaskTypeSmartReminder,
		Intent:         msg.Intent.String(),
		Title:          msg.Title,
		Body:           msg.Body,
		Route:          msg.Route,
	}

	resp, err := n.queue.RegisterNotification(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	slog.DebugContext(ctx, "notification enqueued",
		slog.String("installation_id", installationID),
		slog.String("task_id", task.TaskID),
		slog.String("task_name", resp.Name),
	)
	return nil
}
