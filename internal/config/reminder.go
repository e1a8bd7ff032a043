package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultTimezoneEnv          = "REMINDER_DEFAULT_TIMEZONE"
	lockTTLEnv                  = "REMINDER_LOCK_TTL"
	minSpacingEnv               = "REMINDER_MIN_SPACING"
	streakLookbackDaysEnv       = "REMINDER_STREAK_LOOKBACK_DAYS"
	hourModeLookbackSessionsEnv = "REMINDER_HOUR_MODE_LOOKBACK_SESSIONS"
	habitWindowMinutesEnv       = "REMINDER_HABIT_WINDOW_MINUTES"
	quietHoursStartEnv          = "REMINDER_QUIET_HOURS_START"
	quietHoursEndEnv            = "REMINDER_QUIET_HOURS_END"
	defaultTargetEnv            = "REMINDER_DEFAULT_TARGET"

	defaultTimezone                 = "UTC"
	defaultLockTTL                  = 2 * time.Minute
	defaultMinSpacing               = 12 * time.Hour
	defaultStreakLookbackDays       = 30
	defaultHourModeLookbackSessions = 14
	defaultHabitWindowMinutes       = 30
	defaultQuietHoursStart          = "22:00"
	defaultQuietHoursEnd            = "08:00"
	defaultTarget                   = "19:30"
)

// ReminderConfig tunes the decision cycle. Clock values are "HH:MM" in the
// installation's local time.
type ReminderConfig struct {
	DefaultLocation          *time.Location
	LockTTL                  time.Duration
	MinSpacing               time.Duration
	StreakLookbackDays       int
	HourModeLookbackSessions int
	HabitWindowMinutes       int
	QuietHoursStart          string
	QuietHoursEnd            string
	DefaultTarget            string
}

func LoadReminderConfig() (*ReminderConfig, error) {
	tz := os.Getenv(defaultTimezoneEnv)
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, tz)
	}

	return &ReminderConfig{
		DefaultLocation:          loc,
		LockTTL:                  positiveDuration(lockTTLEnv, defaultLockTTL),
		MinSpacing:               positiveDuration(minSpacingEnv, defaultMinSpacing),
		StreakLookbackDays:       positiveInt(streakLookbackDaysEnv, defaultStreakLookbackDays),
		HourModeLookbackSessions: positiveInt(hourModeLookbackSessionsEnv, defaultHourModeLookbackSessions),
		HabitWindowMinutes:       positiveInt(habitWindowMinutesEnv, defaultHabitWindowMinutes),
		QuietHoursStart:          clock(quietHoursStartEnv, defaultQuietHoursStart),
		QuietHoursEnd:            clock(quietHoursEndEnv, defaultQuietHoursEnd),
		DefaultTarget:            clock(defaultTargetEnv, defaultTarget),
	}, nil
}

func positiveDuration(env string, def time.Duration) time.Duration {
	if v := os.Getenv(env); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}

func clock(env, def string) string {
	if v := os.Getenv(env); v != "" {
		if _, err := time.Parse("15:04", v); err == nil {
			return v
		}
	}
	return def
}
