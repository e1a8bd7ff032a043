//go:build !gcloud

package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/logging"
)

func TestInit_WithoutExporters(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	res, err := Init(context.Background(), Config{
		ServiceInfo:   logging.ServiceInfo{Name: "smart-reminder", Version: "test"},
		Environment:   logging.EnvDev,
		DefaultModule: logging.Module("smart-reminder"),
	})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() {
		if err := res.Shutdown(context.Background()); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})

	if res.Logger() == nil {
		t.Fatal("Logger() returned nil")
	}

	_, span := otel.Tracer("test").Start(context.Background(), "probe")
	defer span.End()
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording tracer provider to be installed")
	}
}
