//go:build !gcloud

package taskqueue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPrimindTasksClient_RegisterWake(t *testing.T) {
	fireAt := time.Date(2024, 3, 11, 18, 30, 0, 0, time.UTC)

	var received PrimindTaskRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{
			Name:         "queues/wake/tasks/" + received.Task.Name,
			ScheduleTime: received.Task.ScheduleTime,
			CreateTime:   "2024-03-10T21:00:00Z",
		})
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(PrimindTasksConfig{BaseURL: srv.URL, WakeQueue: "reminder-wake"})

	resp, err := client.RegisterWake(context.Background(), &WakeTask{
		TaskID:         "smart-reminder-inst-1-abc",
		ScheduleAt:     fireAt,
		InstallationID: "inst-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/tasks/reminder-wake" {
		t.Errorf("path: got %q", path)
	}
	if received.Task.Name != "smart-reminder-inst-1-abc" {
		t.Errorf("task name: got %q", received.Task.Name)
	}
	if received.Task.ScheduleTime != "2024-03-11T18:30:00Z" {
		t.Errorf("schedule time: got %q", received.Task.ScheduleTime)
	}
	if received.Task.HTTPRequest.Headers[MessageTypeHeader] != MessageTypeWake {
		t.Errorf("message type header: got %q", received.Task.HTTPRequest.Headers[MessageTypeHeader])
	}

	raw, err := base64.StdEncoding.DecodeString(received.Task.HTTPRequest.Body)
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if payload["installation_id"] != "inst-1" {
		t.Errorf("payload: got %v", payload)
	}

	if !resp.ScheduleTime.Equal(fireAt) {
		t.Errorf("response schedule time: got %v, want %v", resp.ScheduleTime, fireAt)
	}
}

func TestPrimindTasksClient_RegisterNotificationIsImmediate(t *testing.T) {
	var received PrimindTaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&received)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{Name: "n-1"})
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(PrimindTasksConfig{BaseURL: srv.URL, NotificationQueue: "default"})

	_, err := client.RegisterNotification(context.Background(), &NotificationTask{
		TaskID:         "n-1",
		InstallationID: "inst-1",
		Title:          "t",
		Body:           "b",
		Route:          "workout/start",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if received.Task.ScheduleTime != "" {
		t.Errorf("notification should not be scheduled, got %q", received.Task.ScheduleTime)
	}
}

func TestPrimindTasksClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{Name: "ok"})
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(PrimindTasksConfig{BaseURL: srv.URL, MaxRetries: 3})

	resp, err := client.RegisterWake(context.Background(), &WakeTask{TaskID: "w", InstallationID: "inst-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Name != "ok" || calls.Load() != 3 {
		t.Errorf("got name=%q calls=%d", resp.Name, calls.Load())
	}
}

func TestPrimindTasksClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewPrimindTasksClient(PrimindTasksConfig{BaseURL: srv.URL, MaxRetries: 3})

	if _, err := client.RegisterWake(context.Background(), &WakeTask{TaskID: "w"}); err == nil {
		t.Fatal("expected an error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls: got %d, want 1", calls.Load())
	}
}

func TestPrimindTasksClient_DeleteTask(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "already gone", status: http.StatusNotFound},
		{name: "rejected", status: http.StatusForbidden, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var method, path string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				method, path = r.Method, r.URL.Path
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := NewPrimindTasksClient(PrimindTasksConfig{BaseURL: srv.URL, WakeQueue: "reminder-wake", MaxRetries: 1})

			err := client.DeleteTask(context.Background(), "task-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if method != http.MethodDelete || path != "/tasks/reminder-wake/task-1" {
				t.Errorf("request: got %s %s", method, path)
			}
		})
	}
}
