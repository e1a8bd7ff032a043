package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/runner"
)

//go:generate mockgen -source=reminder_handler.go -destination=reminder_handler_mock.go -package=handler

type ReminderRunner interface {
	Run(ctx context.Context, installationID string) runner.Outcome
	Ensure(ctx context.Context, installationID string) (*domain.ScheduledWake, error)
	ApplyPreferences(ctx context.Context, installationID string, update domain.PreferencesUpdate) (*domain.ReminderPreferences, *domain.ScheduledWake, error)
}

type installationRequest struct {
	InstallationID string `json:"installation_id" binding:"required,max=128"`
}

type EnsureResponse struct {
	InstallationID string    `json:"installation_id"`
	Armed          bool      `json:"armed"`
	NextWakeAt     time.Time `json:"next_wake_at,omitzero"`
}

type ReminderHandler struct {
	runner ReminderRunner
}

func NewReminderHandler(runner ReminderRunner) *ReminderHandler {
	return &ReminderHandler{
		runner: runner,
	}
}

// HandleRun is the wake callback. It answers 500 only when the chain could
// not be re-armed so that the queue redelivers the wake.
func (h *ReminderHandler) HandleRun(c *gin.Context) {
	ctx := c.Request.Context()

	var req installationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid reminder run request", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	outcome := h.runner.Run(ctx, req.InstallationID)

	if outcome.RearmErr != nil {
		slog.ErrorContext(ctx, "reminder run finished without a scheduled wake",
			slog.String("installation_id", req.InstallationID),
			slog.String("error", outcome.RearmErr.Error()),
		)
		c.JSON(http.StatusInternalServerError, outcome)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// HandleEnsure is called when the app comes to the foreground. It restores a
// chain that was lost and is a no-op replacement otherwise.
func (h *ReminderHandler) HandleEnsure(c *gin.Context) {
	ctx := c.Request.Context()

	var req installationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	wake, err := h.runner.Ensure(ctx, req.InstallationID)
	if errors.Is(err, domain.ErrLockNotAcquired) {
		respondError(c, http.StatusConflict, "run_in_progress", "a reminder run is in progress, retry shortly")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to ensure reminder wake",
			slog.String("installation_id", req.InstallationID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusServiceUnavailable, "scheduling_error", "failed to schedule reminder")
		return
	}

	resp := EnsureResponse{InstallationID: req.InstallationID}
	if wake != nil {
		resp.Armed = true
		resp.NextWakeAt = wake.FireAt
	}
	c.JSON(http.StatusOK, resp)
}
