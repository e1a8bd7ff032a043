package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=preference_repository.go -destination=preference_repository_mock.go -package=domain

type PreferenceRepository interface {
	Get(ctx context.Context, installationID string) (*ReminderPreferences, error)
	Update(ctx context.Context, installationID string, update PreferencesUpdate) (*ReminderPreferences, error)
	SetLastReminderSentAt(ctx context.Context, installationID string, sentAt time.Time) error
}
