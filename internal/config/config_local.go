//go:build !gcloud

package config

import (
	"errors"
	"fmt"
)

func (c *TaskQueueConfig) Validate() error {
	var errs []error

	if c.PrimindTasksURL == "" {
		errs = append(errs, errors.New("PRIMIND_TASKS_URL is required"))
	}
	if c.WakeQueue == "" {
		errs = append(errs, errors.New("TASK_QUEUE_WAKE_NAME is required"))
	}
	if c.NotificationQueue == "" {
		errs = append(errs, errors.New("TASK_QUEUE_NOTIFICATION_NAME is required"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("task queue configuration errors: %w", errors.Join(errs...))
	}

	return nil
}
