package main

import (
	"github.com/KasumiMercury/primind-smart-reminder/internal/config"
	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/jobhost"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/notifier"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/eligibility"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/policy"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/runner"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/scheduler"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/stats"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/timewindow"
)

func newRunner(
	cfg *config.Config,
	window *timewindow.Policy,
	taskQueue taskqueue.TaskQueue,
	prefsRepo domain.PreferenceRepository,
	wakeRepo domain.WakeRepository,
	runLocker domain.RunLocker,
	sessionRepo domain.SessionHistoryRepository,
	recorder domain.OutcomeRecorder,
	reminderMetrics *metrics.ReminderMetrics,
) *runner.Runner {
	aggregator := stats.NewAggregator(sessionRepo, stats.Config{
		StreakLookbackDays:       cfg.Reminder.StreakLookbackDays,
		HourModeLookbackSessions: cfg.Reminder.HourModeLookbackSessions,
		MaxConcurrentLookups:     cfg.History.MaxOpenConns,
	})

	return runner.NewRunner(
		prefsRepo,
		aggregator,
		policy.NewPolicy(window),
		eligibility.NewGate(window, cfg.Reminder.MinSpacing),
		window,
		scheduler.NewScheduler(jobhost.NewHost(taskQueue, wakeRepo), window),
		notifier.NewQueueNotifier(taskQueue),
		runLocker,
		recorder,
		reminderMetrics,
		runner.Config{
			DefaultLocation: cfg.Reminder.DefaultLocation,
			LockTTL:         cfg.Reminder.LockTTL,
		},
	)
}
