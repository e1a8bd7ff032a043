//go:build !gcloud

package outcomerecorder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

const outcomeMeasurement = "reminder_outcome"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.OutcomeRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reminder outcome recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, reminder outcome recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "reminder outcome recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func outcomePoint(record domain.OutcomeRecord) *write.Point {
	fields := map[string]any{
		"installation_id": record.InstallationID,
		"sent":            record.Sent,
		"rearm_failed":    record.RearmFailed,
		"local_hour":      record.RunAt.Hour(),
	}
	if !record.NextWakeAt.IsZero() {
		fields["next_wake_in_seconds"] = int64(record.NextWakeAt.Sub(record.RunAt).Seconds())
	}

	return influxdb2.NewPoint(
		outcomeMeasurement,
		map[string]string{
			"reason": record.Reason.String(),
			"intent": record.Intent.String(),
			"sent":   strconv.FormatBool(record.Sent),
		},
		fields,
		record.RunAt,
	)
}

func (r *influxDBRecorder) Record(ctx context.Context, record domain.OutcomeRecord) error {
	if err := r.writeAPI.WritePoint(ctx, outcomePoint(record)); err != nil {
		return fmt.Errorf("write reminder outcome to InfluxDB: %w", err)
	}
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
