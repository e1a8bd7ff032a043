package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-smart-reminder/internal/config"
	"github.com/KasumiMercury/primind-smart-reminder/internal/handler"
	"github.com/KasumiMercury/primind-smart-reminder/internal/health"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/history"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/outcomerecorder"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/repository"
	"github.com/KasumiMercury/primind-smart-reminder/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/metrics"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/middleware"
)

// Version is set via ldflags at build time
var Version = "dev"

const moduleName = logging.Module("smart-reminder")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	window, err := cfg.Reminder.Window()
	if err != nil {
		slog.Error("invalid reminder window configuration", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	outcomeRecorder, err := outcomerecorder.NewRecorder(ctx, outcomerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize outcome recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := outcomeRecorder.Close(); err != nil {
			slog.Warn("failed to close outcome recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		return 1
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	historyDB, err := history.Open(ctx, history.Config{
		DSN:          cfg.History.DSN,
		MaxOpenConns: cfg.History.MaxOpenConns,
		SlowQuery:    cfg.History.SlowQuery,
	})
	if err != nil {
		slog.Error("failed to open history database",
			slog.String("event", "history.open.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := history.Close(historyDB); err != nil {
			slog.Warn("failed to close history database", slog.String("error", err.Error()))
		}
	}()

	prefsRepo := repository.NewPreferenceRepository(redisClient, cfg.Reminder.DefaultLocation.String())
	wakeRepo := repository.NewWakeRepository(redisClient)
	runLocker := repository.NewRunLocker(redisClient)
	sessionRepo := history.NewSessionRepository(historyDB)

	reminderRunner := newRunner(cfg, window, taskQueue, prefsRepo, wakeRepo, runLocker, sessionRepo, outcomeRecorder, reminderMetrics)

	reminderHandler := handler.NewReminderHandler(reminderRunner)
	preferencesHandler := handler.NewPreferencesHandler(prefsRepo, reminderRunner)
	sessionHandler := handler.NewSessionHandler(sessionRepo, reminderMetrics)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     moduleName,
		Worker:     true,
		TracerName: "github.com/KasumiMercury/primind-smart-reminder/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if messageType := c.Request.Header.Get(taskqueue.MessageTypeHeader); messageType != "" {
				return messageType
			}
			return c.FullPath()
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(redisClient, historyDB, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/reminder/run", reminderHandler.HandleRun)
		v1.POST("/reminder/ensure", reminderHandler.HandleEnsure)
		v1.GET("/preferences/:installation_id", preferencesHandler.HandleGet)
		v1.PUT("/preferences/:installation_id", preferencesHandler.HandleUpdate)
		v1.POST("/sessions", sessionHandler.HandleCreate)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("default_timezone", cfg.Reminder.DefaultLocation.String()),
			slog.String("quiet_hours", window.QuietHoursStart.String()+"-"+window.QuietHoursEnd.String()),
			slog.Duration("min_spacing", cfg.Reminder.MinSpacing),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(cfg.Options())

	if err := redisotel.InstrumentTracing(client); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))

	return client, nil
}
