package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	TaskQueue TaskQueueConfig
	Redis     *RedisConfig
	Reminder  *ReminderConfig
	History   *HistoryConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL   string
	WakeQueue         string
	NotificationQueue string

	GCloudProjectID             string
	GCloudLocationID            string
	GCloudQueueID               string
	GCloudWakeTargetURL         string
	GCloudNotificationTargetURL string
	GCloudServiceAccountEmail   string
	GCloudTasksEndpoint         string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	reminderConfig, err := LoadReminderConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:      port,
		LogLevel:  parseLogLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: LoadTaskQueueConfig(),
		Redis:     redisConfig,
		Reminder:  reminderConfig,
		History:   LoadHistoryConfig(),
	}, nil
}

func LoadTaskQueueConfig() TaskQueueConfig {
	wakeQueue := os.Getenv("TASK_QUEUE_WAKE_NAME")
	if wakeQueue == "" {
		wakeQueue = "reminder-wake"
	}

	notificationQueue := os.Getenv("TASK_QUEUE_NOTIFICATION_NAME")
	if notificationQueue == "" {
		notificationQueue = "notification"
	}

	return TaskQueueConfig{
		PrimindTasksURL:   os.Getenv("PRIMIND_TASKS_URL"),
		WakeQueue:         wakeQueue,
		NotificationQueue: notificationQueue,

		GCloudProjectID:             os.Getenv("GCLOUD_PROJECT_ID"),
		GCloudLocationID:            os.Getenv("GCLOUD_LOCATION_ID"),
		GCloudQueueID:               os.Getenv("GCLOUD_QUEUE_ID"),
		GCloudWakeTargetURL:         os.Getenv("GCLOUD_WAKE_TARGET_URL"),
		GCloudNotificationTargetURL: os.Getenv("GCLOUD_NOTIFICATION_TARGET_URL"),
		GCloudServiceAccountEmail:   os.Getenv("GCLOUD_SERVICE_ACCOUNT_EMAIL"),
		GCloudTasksEndpoint:         os.Getenv("CLOUD_TASKS_EMULATOR_HOST"),

		MaxRetries: positiveInt("TASK_QUEUE_MAX_RETRIES", 3),
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// positiveInt reads a positive integer, falling back to def on absence or garbage.
func positiveInt(env string, def int) int {
	if v := os.Getenv(env); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
