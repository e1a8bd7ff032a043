package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/testutil"
)

func TestPreferenceRepositoryGetDefaults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPreferenceRepository(client, "Asia/Tokyo")

	got, err := repo.Get(ctx, "inst-new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := domain.DefaultPreferences("Asia/Tokyo")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestPreferenceRepositoryUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPreferenceRepository(client, "UTC")
	off := false
	tz := "Europe/Berlin"

	tests := []struct {
		name   string
		update domain.PreferencesUpdate
		want   *domain.ReminderPreferences
	}{
		{
			name:   "empty update returns defaults",
			update: domain.PreferencesUpdate{},
			want:   domain.DefaultPreferences("UTC"),
		},
		{
			name:   "disable quiet hours keeps other fields",
			update: domain.PreferencesUpdate{QuietHoursEnabled: &off},
			want: &domain.ReminderPreferences{
				NotificationsEnabled:  true,
				SmartRemindersEnabled: true,
				QuietHoursEnabled:     false,
				Timezone:              "UTC",
			},
		},
		{
			name:   "timezone and smart reminders accumulate",
			update: domain.PreferencesUpdate{SmartRemindersEnabled: &off, Timezone: &tz},
			want: &domain.ReminderPreferences{
				NotificationsEnabled:  true,
				SmartRemindersEnabled: false,
				QuietHoursEnabled:     false,
				Timezone:              "Europe/Berlin",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Update(ctx, "inst-1", tt.update)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("preferences mismatch (-want +got):\n%s", diff)
			}

			reread, err := repo.Get(ctx, "inst-1")
			if err != nil {
				t.Fatalf("unexpected error on re-read: %v", err)
			}
			if diff := cmp.Diff(got, reread); diff != "" {
				t.Errorf("re-read mismatch (-update +get):\n%s", diff)
			}
		})
	}
}

func TestPreferenceRepositoryUpdateRejectsUnknownTimezone(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPreferenceRepository(client, "UTC")
	tz := "Mars/Olympus"

	_, err := repo.Update(ctx, "inst-1", domain.PreferencesUpdate{Timezone: &tz})
	if !errors.Is(err, domain.ErrInvalidPreferences) {
		t.Errorf("expected ErrInvalidPreferences, got %v", err)
	}
}

func TestPreferenceRepositorySetLastReminderSentAt(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewPreferenceRepository(client, "UTC")
	sentAt := time.Date(2024, 3, 10, 21, 0, 0, 123, time.UTC)

	if err := repo.SetLastReminderSentAt(ctx, "inst-1", sentAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, "inst-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.LastReminderSentAt == nil || !got.LastReminderSentAt.Equal(sentAt) {
		t.Errorf("LastReminderSentAt: got %v, want %v", got.LastReminderSentAt, sentAt)
	}
	if !got.NotificationsEnabled {
		t.Error("other fields should keep their defaults")
	}
}

func TestPreferenceRepositoryCorruptFieldKeepsStoredSwitches(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	if err := client.HSet(ctx, "reminder:prefs:inst-bad",
		"notifications_enabled", "false",
		"last_reminder_sent_at", "yesterday-ish",
	).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	repo := NewPreferenceRepository(client, "UTC")
	got, err := repo.Get(ctx, "inst-bad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.NotificationsEnabled {
		t.Error("stored opt-out must survive a corrupt timestamp")
	}
	if got.LastReminderSentAt != nil {
		t.Errorf("corrupt timestamp should read as never sent, got %v", got.LastReminderSentAt)
	}
}

func TestDecodePreferences(t *testing.T) {
	sentAt := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		fields  map[string]string
		want    *domain.ReminderPreferences
		wantErr bool
	}{
		{
			name:   "empty hash reads as defaults",
			fields: map[string]string{},
			want:   domain.DefaultPreferences("UTC"),
		},
		{
			name: "corrupt timestamp keeps switches",
			fields: map[string]string{
				"notifications_enabled":   "false",
				"smart_reminders_enabled": "true",
				"last_reminder_sent_at":   "not-a-time",
			},
			want: &domain.ReminderPreferences{
				NotificationsEnabled:  false,
				SmartRemindersEnabled: true,
				QuietHoursEnabled:     true,
				Timezone:              "UTC",
			},
			wantErr: true,
		},
		{
			name: "corrupt switch reads as off",
			fields: map[string]string{
				"smart_reminders_enabled": "maybe",
				"last_reminder_sent_at":   sentAt.Format(time.RFC3339Nano),
				"timezone":                "Asia/Tokyo",
			},
			want: &domain.ReminderPreferences{
				NotificationsEnabled:  true,
				SmartRemindersEnabled: false,
				QuietHoursEnabled:     true,
				LastReminderSentAt:    &sentAt,
				Timezone:              "Asia/Tokyo",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodePreferences(tt.fields, "UTC")
			if tt.wantErr != errors.Is(err, ErrInvalidPreferencesData) {
				t.Errorf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("preferences mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreferenceRepositoryEmptyID(t *testing.T) {
	repo := NewPreferenceRepository(nil, "UTC")

	if _, err := repo.Get(context.Background(), ""); !errors.Is(err, domain.ErrInvalidInstallationID) {
		t.Errorf("Get: expected ErrInvalidInstallationID, got %v", err)
	}
	if err := repo.SetLastReminderSentAt(context.Background(), "", time.Now()); !errors.Is(err, domain.ErrInvalidInstallationID) {
		t.Errorf("SetLastReminderSentAt: expected ErrInvalidInstallationID, got %v", err)
	}
}
