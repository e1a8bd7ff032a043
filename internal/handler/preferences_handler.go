package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

type PreferencesResponse struct {
	InstallationID string                      `json:"installation_id"`
	Preferences    *domain.ReminderPreferences `json:"preferences"`
	NextWakeAt     time.Time                   `json:"next_wake_at,omitzero"`
}

type PreferencesHandler struct {
	prefsRepo domain.PreferenceRepository
	runner    ReminderRunner
}

func NewPreferencesHandler(prefsRepo domain.PreferenceRepository, runner ReminderRunner) *PreferencesHandler {
	return &PreferencesHandler{
		prefsRepo: prefsRepo,
		runner:    runner,
	}
}

func (h *PreferencesHandler) HandleGet(c *gin.Context) {
	ctx := c.Request.Context()
	installationID := c.Param("installation_id")

	prefs, err := h.prefsRepo.Get(ctx, installationID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInstallationID) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to load preferences",
			slog.String("installation_id", installationID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusServiceUnavailable, "store_error", "failed to load preferences")
		return
	}

	c.JSON(http.StatusOK, PreferencesResponse{
		InstallationID: installationID,
		Preferences:    prefs,
	})
}

// HandleUpdate stores the change and arms or cancels the wake before
// answering, so no run fires after the user has opted out.
func (h *PreferencesHandler) HandleUpdate(c *gin.Context) {
	ctx := c.Request.Context()
	installationID := c.Param("installation_id")

	var update domain.PreferencesUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if update.IsEmpty() {
		respondError(c, http.StatusBadRequest, "validation_error", "no preference fields provided")
		return
	}

	prefs, wake, err := h.runner.ApplyPreferences(ctx, installationID, update)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPreferences), errors.Is(err, domain.ErrInvalidInstallationID):
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, domain.ErrLockNotAcquired):
			respondError(c, http.StatusConflict, "run_in_progress", "a reminder run is in progress, retry shortly")
		case prefs != nil:
			// Stored, but the wake could not be brought in line.
			slog.ErrorContext(ctx, "preferences stored but scheduling failed",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusServiceUnavailable, "scheduling_error", "preferences saved but reminder schedule was not updated")
		default:
			slog.ErrorContext(ctx, "failed to update preferences",
				slog.String("installation_id", installationID),
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusServiceUnavailable, "store_error", "failed to update preferences")
		}
		return
	}

	slog.InfoContext(ctx, "preferences updated",
		slog.String("installation_id", installationID),
		slog.Bool("reminders_enabled", prefs.RemindersEnabled()),
	)

	resp := PreferencesResponse{
		InstallationID: installationID,
		Preferences:    prefs,
	}
	if wake != nil {
		resp.NextWakeAt = wake.FireAt
	}
	c.JSON(http.StatusOK, resp)
}
