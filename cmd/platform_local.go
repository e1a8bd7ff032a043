//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-smart-reminder/internal/config"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/logging"
)

func initTaskQueue(_ context.Context, cfg *config.Config) (taskqueue.TaskQueue, func() error, error) {
	tq := taskqueue.NewPrimindTasksClient(taskqueue.PrimindTasksConfig{
		BaseURL:           cfg.TaskQueue.PrimindTasksURL,
		WakeQueue:         cfg.TaskQueue.WakeQueue,
		NotificationQueue: cfg.TaskQueue.NotificationQueue,
		MaxRetries:        cfg.TaskQueue.MaxRetries,
	})

	slog.Info("task queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("wake_queue", cfg.TaskQueue.WakeQueue),
		slog.String("notification_queue", cfg.TaskQueue.NotificationQueue),
	)

	return tq, nil, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "smart-reminder"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: moduleName,
	})
}
