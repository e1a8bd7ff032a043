package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/tracing"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/eligibility"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/policy"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/scheduler"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/stats"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/timewindow"
)

const (
	defaultLockTTL  = 2 * time.Minute
	defaultLockWait = 10 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

type Runner struct {
	prefsRepo  domain.PreferenceRepository
	aggregator *stats.Aggregator
	policy     *policy.Policy
	gate       *eligibility.Gate
	window     *timewindow.Policy
	scheduler  *scheduler.Scheduler
	notifier   domain.Notifier
	locker     domain.RunLocker
	recorder   domain.OutcomeRecorder
	metrics    *metrics.ReminderMetrics

	defaultLoc *time.Location
	lockTTL    time.Duration
	lockWait   time.Duration
	lockPoll   time.Duration
	now        func() time.Time
	rng        *rand.Rand
}

func NewRunner(
	prefsRepo domain.PreferenceRepository,
	aggregator *stats.Aggregator,
	reminderPolicy *policy.Policy,
	gate *eligibility.Gate,
	window *timewindow.Policy,
	reminderScheduler *scheduler.Scheduler,
	notifier domain.Notifier,
	locker domain.RunLocker,
	recorder domain.OutcomeRecorder,
	reminderMetrics *metrics.ReminderMetrics,
	cfg Config,
) *Runner {
	loc := cfg.DefaultLocation
	if loc == nil {
		loc = time.UTC
	}
	lockTTL := cfg.LockTTL
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	lockWait := cfg.LockWait
	if lockWait <= 0 {
		lockWait = defaultLockWait
	}
	if window == nil {
		window = timewindow.NewPolicy()
	}

	return &Runner{
		prefsRepo:  prefsRepo,
		aggregator: aggregator,
		policy:     reminderPolicy,
		gate:       gate,
		window:     window,
		scheduler:  reminderScheduler,
		notifier:   notifier,
		locker:     locker,
		recorder:   recorder,
		metrics:    reminderMetrics,
		defaultLoc: loc,
		lockTTL:    lockTTL,
		lockWait:   lockWait,
		lockPoll:   lockPollEvery,
		now:        time.Now,
	}
}

// WithClock overrides the time source. Intended for tests and replays.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// WithRand fixes the message picker's randomness.
func (r *Runner) WithRand(rng *rand.Rand) *Runner {
	r.rng = rng
	return r
}

// Run executes one reminder cycle for the installation. Every path that leaves
// reminders enabled ends with a re-arm, including failures inside the cycle.
// Preferences are read again before sending and before re-arming, so an
// opt-out stored while the cycle runs stops both.
func (r *Runner) Run(ctx context.Context, installationID string) Outcome {
	started := time.Now()

	ctx, span := tracing.StartRunSpan(ctx, installationID)
	defer span.End()

	outcome := Outcome{
		InstallationID: installationID,
		RunAt:          r.now(),
	}

	if r.locker != nil {
		locked, err := r.locker.TryLock(ctx, installationID, r.lockTTL)
		if err != nil {
			slog.WarnContext(ctx, "failed to acquire run lock, continuing without it",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
		} else if !locked {
			slog.InfoContext(ctx, "another run is in progress, skipping",
				slog.String("installation_id", installationID),
			)
			outcome.Reason = domain.ReasonBusy
			r.finish(ctx, outcome, started)
			tracing.RecordRunResult(span, string(outcome.Reason), outcome.Intent.String(), outcome.Sent, nil)
			return outcome
		} else {
			defer func() {
				if err := r.locker.Unlock(context.WithoutCancel(ctx), installationID); err != nil {
					slog.WarnContext(ctx, "failed to release run lock",
						slog.String("installation_id", installationID),
						slog.String("error", err.Error()),
					)
				}
			}()
		}
	}

	prefs := r.loadPreferences(ctx, installationID)
	now := outcome.RunAt.In(prefs.Location(r.defaultLoc))
	outcome.RunAt = now

	if !prefs.RemindersEnabled() {
		outcome.Reason = domain.ReasonDisabled
		outcome.Disarmed = true
		if err := r.scheduler.Cancel(ctx, installationID); err != nil {
			slog.WarnContext(ctx, "failed to cancel wake for disabled installation",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
		}
		r.finish(ctx, outcome, started)
		tracing.RecordRunResult(span, string(outcome.Reason), outcome.Intent.String(), outcome.Sent, nil)
		return outcome
	}

	hour, known := r.cycle(ctx, installationID, prefs, now, &outcome)

	if !r.loadPreferences(ctx, installationID).RemindersEnabled() {
		slog.InfoContext(ctx, "reminders disabled during run, not re-arming",
			slog.String("installation_id", installationID),
		)
		outcome.Disarmed = true
		if err := r.scheduler.Cancel(ctx, installationID); err != nil {
			slog.WarnContext(ctx, "failed to cancel wake for disabled installation",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
		}
		r.finish(ctx, outcome, started)
		tracing.RecordRunResult(span, string(outcome.Reason), outcome.Intent.String(), outcome.Sent, nil)
		return outcome
	}

	if !known {
		hour = r.aggregator.MostCommonWorkoutHour(ctx, installationID, now)
	}

	wake, err := r.scheduler.Arm(ctx, installationID, hour, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to re-arm reminder wake",
			slog.String("installation_id", installationID),
			slog.String("error", err.Error()),
		)
		outcome.RearmErr = err
		if r.metrics != nil {
			r.metrics.RecordRearmFailure(ctx)
		}
	} else {
		outcome.NextWakeAt = wake.FireAt
	}

	r.finish(ctx, outcome, started)
	tracing.RecordRunResult(span, string(outcome.Reason), outcome.Intent.String(), outcome.Sent, outcome.RearmErr)

	return outcome
}

// cycle runs the decision steps. It reports the most common workout hour and
// whether stats were computed, so the caller can place the next wake. A panic
// before the send is converted to ReasonInternalError; one after a delivered
// send keeps the sent outcome.
func (r *Runner) cycle(
	ctx context.Context,
	installationID string,
	prefs *domain.ReminderPreferences,
	now time.Time,
	outcome *Outcome,
) (hour *int, known bool) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "reminder cycle panicked",
				slog.String("installation_id", installationID),
				slog.String("panic", fmt.Sprint(rec)),
			)
			if !outcome.Sent {
				outcome.Message = nil
				outcome.Reason = domain.ReasonInternalError
			}
		}
	}()

	if prefs.QuietHoursEnabled && r.window.IsInQuietHours(timewindow.Of(now)) {
		outcome.Reason = domain.ReasonQuietHours
		return nil, false
	}

	sessionStats := r.aggregator.GetStats(ctx, installationID, now)
	hour, known = sessionStats.MostCommonWorkoutHour, true

	if sessionStats.WorkedOutToday {
		outcome.Reason = domain.ReasonWorkedOutToday
		return hour, known
	}

	if ok, reason := r.gate.Check(prefs, now); !ok {
		outcome.Reason = reason
		return hour, known
	}

	intent := r.policy.SelectIntent(sessionStats, now)
	outcome.Intent = intent
	if intent.IsNone() {
		outcome.Reason = domain.ReasonNoIntent
		return hour, known
	}

	msg, ok := policy.Resolve(intent, r.rng)
	if !ok {
		outcome.Reason = domain.ReasonNoIntent
		return hour, known
	}

	if !r.loadPreferences(ctx, installationID).RemindersEnabled() {
		outcome.Reason = domain.ReasonDisabled
		return hour, known
	}

	if err := r.notifier.Send(ctx, installationID, msg); err != nil {
		slog.WarnContext(ctx, "failed to send reminder",
			slog.String("installation_id", installationID),
			slog.String("intent", intent.String()),
			slog.String("error", err.Error()),
		)
		outcome.Reason = domain.ReasonSendFailed
		return hour, known
	}

	outcome.Sent = true
	outcome.Message = &msg
	outcome.Reason = domain.ReasonSent

	if err := r.prefsRepo.SetLastReminderSentAt(ctx, installationID, now); err != nil {
		slog.WarnContext(ctx, "failed to persist last reminder time",
			slog.String("installation_id", installationID),
			slog.String("error", err.Error()),
		)
	}

	slog.InfoContext(ctx, "reminder sent",
		slog.String("installation_id", installationID),
		slog.String("intent", intent.String()),
		slog.String("route", msg.Route),
	)

	return hour, known
}

// Ensure arms the chain when reminders are enabled and cancels it otherwise.
// It is the recovery path for a chain whose re-arm failed. It waits for an
// in-flight run of the same installation and fails with ErrLockNotAcquired
// when that run does not finish within the lock wait.
func (r *Runner) Ensure(ctx context.Context, installationID string) (*domain.ScheduledWake, error) {
	unlock, err := r.waitLock(ctx, installationID)
	if err != nil {
		return nil, fmt.Errorf("ensure: %w", err)
	}
	defer unlock()

	return r.ensure(ctx, installationID)
}

func (r *Runner) ensure(ctx context.Context, installationID string) (*domain.ScheduledWake, error) {
	prefs := r.loadPreferences(ctx, installationID)

	if !prefs.RemindersEnabled() {
		return nil, r.scheduler.Cancel(ctx, installationID)
	}

	now := r.now().In(prefs.Location(r.defaultLoc))
	hour := r.aggregator.MostCommonWorkoutHour(ctx, installationID, now)

	wake, err := r.scheduler.Arm(ctx, installationID, hour, now)
	if err != nil && r.metrics != nil {
		r.metrics.RecordRearmFailure(ctx)
	}
	return wake, err
}

// ApplyPreferences stores a settings change, then cancels or arms the wake so
// that no stray run fires after the user opts out. It holds the run lock for
// the whole change, so a run in flight cannot re-arm behind it.
func (r *Runner) ApplyPreferences(
	ctx context.Context,
	installationID string,
	update domain.PreferencesUpdate,
) (*domain.ReminderPreferences, *domain.ScheduledWake, error) {
	unlock, err := r.waitLock(ctx, installationID)
	if err != nil {
		return nil, nil, fmt.Errorf("update preferences: %w", err)
	}
	defer unlock()

	prefs, err := r.prefsRepo.Update(ctx, installationID, update)
	if err != nil {
		return nil, nil, fmt.Errorf("update preferences: %w", err)
	}

	if !prefs.RemindersEnabled() {
		if err := r.scheduler.Cancel(ctx, installationID); err != nil {
			return prefs, nil, err
		}
		return prefs, nil, nil
	}

	wake, err := r.ensure(ctx, installationID)
	return prefs, wake, err
}

// waitLock polls for the installation's run lock until it is free, lockWait
// passes or ctx ends. A locker error proceeds unlocked, as Run does.
func (r *Runner) waitLock(ctx context.Context, installationID string) (func(), error) {
	noop := func() {}
	if r.locker == nil {
		return noop, nil
	}

	deadline := time.NewTimer(r.lockWait)
	defer deadline.Stop()
	ticker := time.NewTicker(r.lockPoll)
	defer ticker.Stop()

	for {
		locked, err := r.locker.TryLock(ctx, installationID, r.lockTTL)
		if err != nil {
			slog.WarnContext(ctx, "failed to acquire run lock, continuing without it",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
			return noop, nil
		}
		if locked {
			return func() {
				if err := r.locker.Unlock(context.WithoutCancel(ctx), installationID); err != nil {
					slog.WarnContext(ctx, "failed to release run lock",
						slog.String("installation_id", installationID),
						slog.String("error", err.Error()),
					)
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return noop, errors.Join(domain.ErrLockNotAcquired, ctx.Err())
		case <-deadline.C:
			return noop, domain.ErrLockNotAcquired
		case <-ticker.C:
		}
	}
}

func (r *Runner) loadPreferences(ctx context.Context, installationID string) *domain.ReminderPreferences {
	prefs, err := r.prefsRepo.Get(ctx, installationID)
	if err != nil || prefs == nil {
		if err != nil {
			slog.WarnContext(ctx, "failed to load preferences, using defaults",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
		}
		return domain.DefaultPreferences(r.defaultLoc.String())
	}
	return prefs
}

func (r *Runner) finish(ctx context.Context, outcome Outcome, started time.Time) {
	if r.metrics != nil {
		r.metrics.RecordRun(ctx, string(outcome.Reason), outcome.Intent.String())
		r.metrics.RecordRunDuration(ctx, time.Since(started))
	}

	if r.recorder != nil {
		if err := r.recorder.Record(ctx, outcome.Record()); err != nil {
			slog.WarnContext(ctx, "failed to record reminder outcome",
				slog.String("installation_id", outcome.InstallationID),
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(ctx, "reminder run finished",
		slog.String("installation_id", outcome.InstallationID),
		slog.String("reason", string(outcome.Reason)),
		slog.String("intent", outcome.Intent.String()),
		slog.Bool("sent", outcome.Sent),
		slog.Bool("rearm_failed", outcome.RearmErr != nil),
	)
}
