package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=job_host.go -destination=job_host_mock.go -package=domain

// ScheduledWake is the single outstanding wake registered under a logical name.
type ScheduledWake struct {
	Name           string    `json:"name"`
	TaskID         string    `json:"task_id"`
	InstallationID string    `json:"installation_id"`
	FireAt         time.Time `json:"fire_at"`
	ArmedAt        time.Time `json:"armed_at"`
}

// JobHost arms one-shot wakes. ScheduleOnce replaces any wake already registered
// under name; it never adds a second one.
type JobHost interface {
	ScheduleOnce(ctx context.Context, name, installationID string, delay time.Duration) (*ScheduledWake, error)
	Cancel(ctx context.Context, name string) error
}

// WakeRepository remembers which queue task currently backs a logical wake.
type WakeRepository interface {
	GetWake(ctx context.Context, name string) (*ScheduledWake, error)
	SaveWake(ctx context.Context, wake *ScheduledWake) error
	DeleteWake(ctx context.Context, name string) error
}

// RunLocker guards a single installation against overlapping runs.
type RunLocker interface {
	TryLock(ctx context.Context, installationID string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, installationID string) error
}
