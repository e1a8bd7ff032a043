package runner

import (
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

// Outcome describes what one run did and why.
type Outcome struct {
	InstallationID string                `json:"installation_id"`
	RunAt          time.Time             `json:"run_at"`
	Sent           bool                  `json:"sent"`
	Reason         domain.SkipReason     `json:"reason"`
	Intent         domain.ReminderIntent `json:"intent"`
	Message        *domain.Message       `json:"message,omitempty"`
	NextWakeAt     time.Time             `json:"next_wake_at,omitzero"`
	Disarmed       bool                  `json:"disarmed"`
	RearmErr       error                 `json:"-"`
}

// Rearmed reports whether the chain has a wake scheduled after this run.
func (o Outcome) Rearmed() bool {
	return !o.Disarmed && o.RearmErr == nil && !o.NextWakeAt.IsZero()
}

func (o Outcome) Record() domain.OutcomeRecord {
	return domain.OutcomeRecord{
		InstallationID: o.InstallationID,
		RunAt:          o.RunAt,
		Sent:           o.Sent,
		Reason:         o.Reason,
		Intent:         o.Intent,
		NextWakeAt:     o.NextWakeAt,
		RearmFailed:    o.RearmErr != nil,
	}
}

type Config struct {
	DefaultLocation *time.Location
	LockTTL         time.Duration
	// LockWait bounds how long a settings change or ensure call waits for an
	// in-flight run to release the installation's lock.
	LockWait time.Duration
}
