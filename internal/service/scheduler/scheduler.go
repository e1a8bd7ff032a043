package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/timewindow"
)

const wakeNamePrefix = "smart-reminder-"

// WakeName is the fixed logical name of an installation's single wake.
func WakeName(installationID string) string {
	return wakeNamePrefix + installationID
}

type Scheduler struct {
	host   domain.JobHost
	window *timewindow.Policy
}

func NewScheduler(host domain.JobHost, window *timewindow.Policy) *Scheduler {
	if window == nil {
		window = timewindow.NewPolicy()
	}
	return &Scheduler{
		host:   host,
		window: window,
	}
}

// NextDelay is the wait until the personalised target time next occurs after now.
func (s *Scheduler) NextDelay(mostCommonHour *int, now time.Time) time.Duration {
	target := s.window.ComputeTargetTime(mostCommonHour)
	return s.window.DelayUntil(now, target)
}

// Arm replaces the installation's wake with one at the next target time.
func (s *Scheduler) Arm(ctx context.Context, installationID string, mostCommonHour *int, now time.Time) (*domain.ScheduledWake, error) {
	delay := s.NextDelay(mostCommonHour, now)

	ctx, span := tracing.StartArmSpan(ctx, installationID, delay)
	defer span.End()

	wake, err := s.host.ScheduleOnce(ctx, WakeName(installationID), installationID, delay)
	tracing.RecordArmResult(span, err)
	if err != nil {
		return nil, fmt.Errorf("arm wake for %s: %w", installationID, err)
	}

	slog.InfoContext(ctx, "reminder wake armed",
		slog.String("installation_id", installationID),
		slog.Duration("delay", delay),
		slog.Time("fire_at", wake.FireAt),
	)

	return wake, nil
}

// Cancel drops the installation's outstanding wake, if any.
func (s *Scheduler) Cancel(ctx context.Context, installationID string) error {
	if err := s.host.Cancel(ctx, WakeName(installationID)); err != nil {
		return fmt.Errorf("cancel wake for %s: %w", installationID, err)
	}

	slog.InfoContext(ctx, "reminder wake cancelled",
		slog.String("installation_id", installationID),
	)

	return nil
}
