package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reminderTracerName = "github.com/KasumiMercury/primind-smart-reminder/internal/service/runner"

func ReminderTracer() trace.Tracer {
	return otel.Tracer(reminderTracerName)
}

func StartRunSpan(ctx context.Context, installationID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.run",
		trace.WithAttributes(
			attribute.String("installation_id", installationID),
		),
	)
}

func StartStatsSpan(ctx context.Context, installationID string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.stats",
		trace.WithAttributes(
			attribute.String("installation_id", installationID),
		),
	)
}

func StartArmSpan(ctx context.Context, installationID string, delay time.Duration) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.arm",
		trace.WithAttributes(
			attribute.String("installation_id", installationID),
			attribute.Int64("arm.delay_seconds", int64(delay.Seconds())),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return ReminderTracer().Start(ctx, "reminder.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRunResult(span trace.Span, reason, intent string, sent bool, err error) {
	span.SetAttributes(
		attribute.String("run.reason", reason),
		attribute.String("run.intent", intent),
		attribute.Bool("run.sent", sent),
	)
	RecordError(span, err)
}

func RecordStatsResult(span trace.Span, streakDays, sessionsLast7Days int, workedOutToday bool, failedLookups int) {
	span.SetAttributes(
		attribute.Int("stats.streak_days", streakDays),
		attribute.Int("stats.sessions_last_7_days", sessionsLast7Days),
		attribute.Bool("stats.worked_out_today", workedOutToday),
		attribute.Int("stats.failed_lookups", failedLookups),
	)
	if failedLookups > 0 {
		span.SetStatus(codes.Error, "degraded")
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordArmResult(span trace.Span, err error) {
	RecordError(span, err)
}

func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
