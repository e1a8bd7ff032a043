//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/tracing"
)

type CloudTasksClient struct {
	client                *cloudtasks.Client
	projectID             string
	locationID            string
	queueID               string
	wakeTargetURL         string
	notificationTargetURL string
	serviceAccountEmail   string
	maxRetries            int
}

type CloudTasksConfig struct {
	ProjectID             string
	LocationID            string
	QueueID               string
	WakeTargetURL         string
	NotificationTargetURL string
	// ServiceAccountEmail, when set, attaches an OIDC token to every task.
	ServiceAccountEmail string
	// Endpoint points the client at an emulator; it disables authentication.
	Endpoint   string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.Endpoint),
			option.WithoutAuthentication(),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client:                client,
		projectID:             cfg.ProjectID,
		locationID:            cfg.LocationID,
		queueID:               cfg.QueueID,
		wakeTargetURL:         cfg.WakeTargetURL,
		notificationTargetURL: cfg.NotificationTargetURL,
		serviceAccountEmail:   cfg.ServiceAccountEmail,
		maxRetries:            maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) taskPath(taskID string) string {
	return fmt.Sprintf("%s/tasks/%s", c.queuePath(), taskID)
}

func (c *CloudTasksClient) RegisterWake(ctx context.Context, task *WakeTask) (*TaskResponse, error) {
	return c.register(ctx, task.TaskID, c.wakeTargetURL, MessageTypeWake, task, task.ScheduleAt)
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	return c.register(ctx, task.TaskID, c.notificationTargetURL, MessageTypeNotification, task, time.Time{})
}

func (c *CloudTasksClient) register(ctx context.Context, taskID, targetURL, messageType string, payload any, scheduleAt time.Time) (*TaskResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}

	headers := map[string]string{
		"Content-Type":    "application/json",
		MessageTypeHeader: messageType,
	}
	tracing.InjectToMap(ctx, headers)

	httpReq := &taskspb.HttpRequest{
		HttpMethod: taskspb.HttpMethod_POST,
		Url:        targetURL,
		Headers:    headers,
		Body:       body,
	}
	if c.serviceAccountEmail != "" {
		httpReq.AuthorizationHeader = &taskspb.HttpRequest_OidcToken{
			OidcToken: &taskspb.OidcToken{ServiceAccountEmail: c.serviceAccountEmail},
		}
	}

	cloudTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{HttpRequest: httpReq},
	}
	if taskID != "" {
		cloudTask.Name = c.taskPath(taskID)
	}
	if !scheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(scheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	ctx, span := tracing.StartExternalAPISpan(ctx, "create_task", req.Parent)
	defer span.End()

	resp, err := withRetry(ctx, c.maxRetries, "task registration", taskID, func() (*TaskResponse, bool, error) {
		return c.createTask(ctx, req, taskID)
	})
	tracing.RecordError(span, err)
	return resp, err
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, taskID string) (*TaskResponse, bool, error) {
	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return nil, isRetryable(err), fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.String("task_id", taskID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.ScheduleTime != nil {
		scheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		createTime = createdTask.CreateTime.AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, false, nil
}

func (c *CloudTasksClient) DeleteTask(ctx context.Context, taskID string) error {
	taskPath := c.taskPath(taskID)

	ctx, span := tracing.StartExternalAPISpan(ctx, "delete_task", taskPath)
	defer span.End()

	_, err := withRetry(ctx, c.maxRetries, "task deletion", taskID, func() (struct{}, bool, error) {
		err := c.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: taskPath})
		if err == nil {
			slog.InfoContext(ctx, "task deleted from Cloud Tasks", slog.String("task_id", taskID))
			return struct{}{}, false, nil
		}
		if status.Code(err) == codes.NotFound {
			slog.InfoContext(ctx, "task not found in Cloud Tasks (may have been processed)",
				slog.String("task_id", taskID),
			)
			return struct{}{}, false, nil
		}
		slog.WarnContext(ctx, "failed to delete cloud task",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return struct{}{}, isRetryable(err), fmt.Errorf("failed to delete cloud task: %w", err)
	})
	tracing.RecordError(span, err)
	return err
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}

func isRetryable(err error) bool {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted, codes.Internal, codes.Aborted:
		return true
	default:
		return false
	}
}
