package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/history"
	"github.com/KasumiMercury/primind-smart-reminder/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestChecker_HistoryDatabase(t *testing.T) {
	ctx := context.Background()

	db, err := history.Open(ctx, history.Config{DSN: testutil.SQLiteMemoryDSN(t), MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open history database: %v", err)
	}

	checker := NewChecker(nil, db, "test")

	status := checker.Check(ctx)
	if status.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %+v", status)
	}
	if got := status.Checks["history"].Status; got != StatusHealthy {
		t.Errorf("history check: got %s", got)
	}

	if err := history.Close(db); err != nil {
		t.Fatalf("close history database: %v", err)
	}

	status = checker.Check(ctx)
	if status.Status != StatusUnhealthy {
		t.Fatalf("expected unhealthy after close, got %+v", status)
	}
	if status.Checks["history"].Error == "" {
		t.Error("expected an error message for the closed database")
	}
}

func TestChecker_Redis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	status := NewChecker(client, nil, "test").Check(ctx)
	if status.Status != StatusHealthy {
		t.Fatalf("expected healthy, got %+v", status)
	}
	if _, ok := status.Checks["redis"]; !ok {
		t.Error("redis check missing")
	}
}

func TestHandlers(t *testing.T) {
	ctx := context.Background()

	db, err := history.Open(ctx, history.Config{DSN: testutil.SQLiteMemoryDSN(t), MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("open history database: %v", err)
	}
	defer func() { _ = history.Close(db) }()

	checker := NewChecker(nil, db, "v1.2.3")
	r := gin.New()
	r.GET("/health/live", checker.LiveHandler())
	r.GET("/health/ready", checker.ReadyHandler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if w.Code != http.StatusOK {
		t.Errorf("live: got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("ready: got %d", w.Code)
	}

	var got HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Version != "v1.2.3" {
		t.Errorf("version: got %q", got.Version)
	}
}
