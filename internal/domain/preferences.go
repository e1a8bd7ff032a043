package domain

import "time"

// ReminderPreferences is the persisted reminder state of one installation.
type ReminderPreferences struct {
	NotificationsEnabled  bool       `json:"notifications_enabled"`
	SmartRemindersEnabled bool       `json:"smart_reminders_enabled"`
	QuietHoursEnabled     bool       `json:"quiet_hours_enabled"`
	LastReminderSentAt    *time.Time `json:"last_reminder_sent_at,omitempty"`
	Timezone              string     `json:"timezone"`
}

func DefaultPreferences(timezone string) *ReminderPreferences {
	return &ReminderPreferences{
		NotificationsEnabled:  true,
		SmartRemindersEnabled: true,
		QuietHoursEnabled:     true,
		Timezone:              timezone,
	}
}

// RemindersEnabled reports whether both master switches are on.
func (p *ReminderPreferences) RemindersEnabled() bool {
	return p.NotificationsEnabled && p.SmartRemindersEnabled
}

// Location resolves the installation zone, falling back to fallback when unset or unknown.
func (p *ReminderPreferences) Location(fallback *time.Location) *time.Location {
	if p.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// PreferencesUpdate carries a partial settings change; nil fields are left untouched.
type PreferencesUpdate struct {
	NotificationsEnabled  *bool   `json:"notifications_enabled"`
	SmartRemindersEnabled *bool   `json:"smart_reminders_enabled"`
	QuietHoursEnabled     *bool   `json:"quiet_hours_enabled"`
	Timezone              *string `json:"timezone"`
}

func (u PreferencesUpdate) IsEmpty() bool {
	return u.NotificationsEnabled == nil &&
		u.SmartRemindersEnabled == nil &&
		u.QuietHoursEnabled == nil &&
		u.Timezone == nil
}

func (u PreferencesUpdate) ApplyTo(p *ReminderPreferences) {
	if u.NotificationsEnabled != nil {
		p.NotificationsEnabled = *u.NotificationsEnabled
	}
	if u.SmartRemindersEnabled != nil {
		p.SmartRemindersEnabled = *u.SmartRemindersEnabled
	}
	if u.QuietHoursEnabled != nil {
		p.QuietHoursEnabled = *u.QuietHoursEnabled
	}
	if u.Timezone != nil {
		p.Timezone = *u.Timezone
	}
}
