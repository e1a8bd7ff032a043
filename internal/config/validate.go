package config

import (
	"errors"
	"fmt"

	"github.com/KasumiMercury/primind-smart-reminder/internal/service/timewindow"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if cfg.History == nil || cfg.History.DSN == "" {
		errs = append(errs, ErrHistoryDSNMissing)
	}
	if cfg.Reminder != nil {
		if _, err := cfg.Reminder.Window(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

// Window builds the clock policy shared by the gate, the policy and the scheduler.
func (c *ReminderConfig) Window() (*timewindow.Policy, error) {
	w := timewindow.NewPolicy()
	w.HabitWindowMinutes = c.HabitWindowMinutes

	var err error
	if w.QuietHoursStart, err = timewindow.ParseTimeOfDay(c.QuietHoursStart); err != nil {
		return nil, err
	}
	if w.QuietHoursEnd, err = timewindow.ParseTimeOfDay(c.QuietHoursEnd); err != nil {
		return nil, err
	}
	if w.DefaultTarget, err = timewindow.ParseTimeOfDay(c.DefaultTarget); err != nil {
		return nil, err
	}
	return w, nil
}
