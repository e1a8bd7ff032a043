//go:build gcloud

package outcomerecorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time              `bigquery:"recorded_at"`
	RunAt          time.Time              `bigquery:"run_at"`
	InstallationID string                 `bigquery:"installation_id"`
	Sent           bool                   `bigquery:"sent"`
	Reason         string                 `bigquery:"reason"`
	Intent         string                 `bigquery:"intent"`
	NextWakeAt     bigquery.NullTimestamp `bigquery:"next_wake_at"`
	RearmFailed    bool                   `bigquery:"rearm_failed"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.OutcomeRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reminder outcome recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, reminder outcome recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, reminder outcome recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "reminder outcome recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) Record(ctx context.Context, record domain.OutcomeRecord) error {
	row := &bigQueryRecord{
		RecordedAt:     time.Now(),
		RunAt:          record.RunAt,
		InstallationID: record.InstallationID,
		Sent:           record.Sent,
		Reason:         record.Reason.String(),
		Intent:         record.Intent.String(),
		NextWakeAt:     bigquery.NullTimestamp{Timestamp: record.NextWakeAt, Valid: !record.NextWakeAt.IsZero()},
		RearmFailed:    record.RearmFailed,
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("insert reminder outcome to BigQuery: %w", err)
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
