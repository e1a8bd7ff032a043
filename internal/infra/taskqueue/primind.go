//go:build !gcloud

package taskqueue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/tracing"
)

type PrimindTasksConfig struct {
	BaseURL string
	// WakeQueue delivers to this service's run endpoint, NotificationQueue to
	// the push delivery service.
	WakeQueue         string
	NotificationQueue string
	MaxRetries        int
	HTTPClient        *http.Client
}

type PrimindTasksClient struct {
	baseURL           string
	wakeQueue         string
	notificationQueue string
	httpClient        *http.Client
	maxRetries        int
}

func NewPrimindTasksClient(cfg PrimindTasksConfig) *PrimindTasksClient {
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &PrimindTasksClient{
		baseURL:           cfg.BaseURL,
		wakeQueue:         cfg.WakeQueue,
		notificationQueue: cfg.NotificationQueue,
		httpClient:        httpClient,
		maxRetries:        maxRetries,
	}
}

func (c *PrimindTasksClient) queueURL(queue string) string {
	if queue != "" && queue != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, url.PathEscape(queue))
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *PrimindTasksClient) RegisterWake(ctx context.Context, task *WakeTask) (*TaskResponse, error) {
	return c.register(ctx, c.wakeQueue, task.TaskID, MessageTypeWake, task, task.ScheduleAt)
}

func (c *PrimindTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	return c.register(ctx, c.notificationQueue, task.TaskID, MessageTypeNotification, task, time.Time{})
}

func (c *PrimindTasksClient) register(ctx context.Context, queue, taskID, messageType string, payload any, scheduleAt time.Time) (*TaskResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal task payload: %w", err)
	}

	headers := map[string]string{
		"Content-Type":    "application/json",
		MessageTypeHeader: messageType,
	}
	tracing.InjectToMap(ctx, headers)

	primindReq := PrimindTaskRequest{
		Task: PrimindTask{
			Name: taskID,
			HTTPRequest: PrimindHTTPRequest{
				Body:    base64.StdEncoding.EncodeToString(body),
				Headers: headers,
			},
		},
	}
	if !scheduleAt.IsZero() {
		primindReq.Task.ScheduleTime = scheduleAt.UTC().Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(primindReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	target := c.queueURL(queue)

	ctx, span := tracing.StartExternalAPISpan(ctx, "register_task", target)
	defer span.End()

	resp, err := withRetry(ctx, c.maxRetries, "task registration", taskID, func() (*TaskResponse, bool, error) {
		return c.doRegister(ctx, target, reqBody, taskID)
	})
	tracing.RecordError(span, err)
	return resp, err
}

func (c *PrimindTasksClient) doRegister(ctx context.Context, target string, reqBody []byte, taskID string) (*TaskResponse, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(reqBody))
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to Primind Tasks",
			slog.String("task_id", taskID),
			slog.String("error", err.Error()),
		)
		return nil, true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.String("task_id", taskID),
			slog.Int("status_code", resp.StatusCode),
		)
		retryable := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return nil, retryable, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, primindResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	slog.InfoContext(ctx, "task registered to Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.String("task_id", taskID),
	)

	return &TaskResponse{
		Name:         primindResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, false, nil
}

// DeleteTask looks for the task in the wake queue, which is the only queue
// holding delayed tasks.
func (c *PrimindTasksClient) DeleteTask(ctx context.Context, taskID string) error {
	target := fmt.Sprintf("%s/%s", c.queueURL(c.wakeQueue), url.PathEscape(taskID))

	ctx, span := tracing.StartExternalAPISpan(ctx, "delete_task", target)
	defer span.End()

	_, err := withRetry(ctx, c.maxRetries, "task deletion", taskID, func() (struct{}, bool, error) {
		retryable, err := c.doDelete(ctx, target, taskID)
		return struct{}{}, retryable, err
	})
	tracing.RecordError(span, err)
	return err
}

func (c *PrimindTasksClient) doDelete(ctx context.Context, target, taskID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		slog.InfoContext(ctx, "task not found in Primind Tasks (may have been processed)",
			slog.String("task_id", taskID),
		)
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		slog.InfoContext(ctx, "task deleted from Primind Tasks",
			slog.String("task_id", taskID),
		)
		return false, nil
	default:
		retryable := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
		return retryable, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}
