package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

const (
	preferencesKeyPrefix = "reminder:prefs:"

	fieldNotificationsEnabled  = "notifications_enabled"
	fieldSmartRemindersEnabled = "smart_reminders_enabled"
	fieldQuietHoursEnabled     = "quiet_hours_enabled"
	fieldLastReminderSentAt    = "last_reminder_sent_at"
	fieldTimezone              = "timezone"
)

type preferenceRepository struct {
	client          *redis.Client
	defaultTimezone string
}

// NewPreferenceRepository stores one hash per installation. Missing hashes and
// missing fields read as the defaults.
func NewPreferenceRepository(client *redis.Client, defaultTimezone string) domain.PreferenceRepository {
	return &preferenceRepository{
		client:          client,
		defaultTimezone: defaultTimezone,
	}
}

func preferencesKey(installationID string) string {
	return preferencesKeyPrefix + installationID
}

func (r *preferenceRepository) Get(ctx context.Context, installationID string) (*domain.ReminderPreferences, error) {
	if installationID == "" {
		return nil, domain.ErrInvalidInstallationID
	}

	fields, err := r.client.HGetAll(ctx, preferencesKey(installationID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	return r.decode(ctx, installationID, fields), nil
}

func (r *preferenceRepository) Update(ctx context.Context, installationID string, update domain.PreferencesUpdate) (*domain.ReminderPreferences, error) {
	if installationID == "" {
		return nil, domain.ErrInvalidInstallationID
	}

	values := make(map[string]any, 4)
	if update.NotificationsEnabled != nil {
		values[fieldNotificationsEnabled] = strconv.FormatBool(*update.NotificationsEnabled)
	}
	if update.SmartRemindersEnabled != nil {
		values[fieldSmartRemindersEnabled] = strconv.FormatBool(*update.SmartRemindersEnabled)
	}
	if update.QuietHoursEnabled != nil {
		values[fieldQuietHoursEnabled] = strconv.FormatBool(*update.QuietHoursEnabled)
	}
	if update.Timezone != nil {
		if _, err := time.LoadLocation(*update.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidPreferences, *update.Timezone)
		}
		values[fieldTimezone] = *update.Timezone
	}

	key := preferencesKey(installationID)

	// Apply and read back in one transaction so the returned value reflects this write.
	pipe := r.client.TxPipeline()
	if len(values) > 0 {
		pipe.HSet(ctx, key, values)
	}
	getCmd := pipe.HGetAll(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	return r.decode(ctx, installationID, getCmd.Val()), nil
}

func (r *preferenceRepository) SetLastReminderSentAt(ctx context.Context, installationID string, sentAt time.Time) error {
	if installationID == "" {
		return domain.ErrInvalidInstallationID
	}

	err := r.client.HSet(ctx, preferencesKey(installationID),
		fieldLastReminderSentAt, sentAt.UTC().Format(time.RFC3339Nano),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

// decodePreferences keeps every readable field. A malformed switch reads as
// off and a malformed timestamp as never sent; the returned error lists them.
func decodePreferences(fields map[string]string, defaultTimezone string) (*domain.ReminderPreferences, error) {
	prefs := domain.DefaultPreferences(defaultTimezone)
	var errs []error

	bools := []struct {
		name string
		dst  *bool
	}{
		{fieldNotificationsEnabled, &prefs.NotificationsEnabled},
		{fieldSmartRemindersEnabled, &prefs.SmartRemindersEnabled},
		{fieldQuietHoursEnabled, &prefs.QuietHoursEnabled},
	}
	for _, b := range bools {
		raw, ok := fields[b.name]
		if !ok {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidPreferencesData, b.name, raw))
			v = false
		}
		*b.dst = v
	}

	if raw, ok := fields[fieldLastReminderSentAt]; ok && raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidPreferencesData, fieldLastReminderSentAt, raw))
		} else {
			prefs.LastReminderSentAt = &t
		}
	}

	if tz, ok := fields[fieldTimezone]; ok && tz != "" {
		prefs.Timezone = tz
	}

	return prefs, errors.Join(errs...)
}

func (r *preferenceRepository) decode(ctx context.Context, installationID string, fields map[string]string) *domain.ReminderPreferences {
	prefs, err := decodePreferences(fields, r.defaultTimezone)
	if err != nil {
		slog.WarnContext(ctx, "stored preferences partly unreadable, bad fields degraded",
			slog.String("installation_id", installationID),
			slog.String("error", err.Error()),
		)
	}
	return prefs
}
