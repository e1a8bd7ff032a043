package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reminderMeterName = "reminder.service"
)

type ReminderMetrics struct {
	runsTotal      metric.Int64Counter
	runDuration    metric.Float64Histogram
	rearmFailures  metric.Int64Counter
	sessionsLogged metric.Int64Counter
}

func NewReminderMetrics() (*ReminderMetrics, error) {
	meter := otel.Meter(reminderMeterName)

	runsTotal, err := meter.Int64Counter(
		"reminder_runs_total",
		metric.WithDescription("Total number of reminder runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Histogram(
		"reminder_run_duration_seconds",
		metric.WithDescription("Reminder run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	rearmFailures, err := meter.Int64Counter(
		"reminder_rearm_failures_total",
		metric.WithDescription("Total number of failed wake re-arms"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	sessionsLogged, err := meter.Int64Counter(
		"reminder_sessions_logged_total",
		metric.WithDescription("Total number of workout sessions recorded"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		runsTotal:      runsTotal,
		runDuration:    runDuration,
		rearmFailures:  rearmFailures,
		sessionsLogged: sessionsLogged,
	}, nil
}

func (m *ReminderMetrics) RecordRun(ctx context.Context, reason, intent string) {
	m.runsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
		attribute.String("intent", intent),
	))
}

func (m *ReminderMetrics) RecordRunDuration(ctx context.Context, duration time.Duration) {
	m.runDuration.Record(ctx, duration.Seconds())
}

func (m *ReminderMetrics) RecordRearmFailure(ctx context.Context) {
	m.rearmFailures.Add(ctx, 1)
}

func (m *ReminderMetrics) RecordSessionLogged(ctx context.Context, workoutType string) {
	m.sessionsLogged.Add(ctx, 1, metric.WithAttributes(
		attribute.String("workout_type", workoutType),
	))
}
