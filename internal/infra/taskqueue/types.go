package taskqueue

import "time"

const (
	MessageTypeHeader = "message_type"

	MessageTypeWake         = "reminder.wake"
	MessageTypeNotification = "reminder.notification"
)

type WakeTask struct {
	TaskID     string    `json:"-"`
	ScheduleAt time.Time `json:"-"`

	InstallationID string `json:"installation_id"`
}

type NotificationTask struct {
	TaskID string `json:"-"`

	InstallationID string `json:"installation_id"`
	TaskType       string `json:"task_type"`
	Intent         string `json:"intent"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	Route          string `json:"route"`
}

type TaskResponse struct {
	Name         string    `json:"name"`
	ScheduleTime time.Time `json:"schedule_time"`
	CreateTime   time.Time `json:"create_time"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
