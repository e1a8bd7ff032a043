package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/metrics"
)

type createSessionRequest struct {
	ID              string    `json:"id" binding:"max=64"`
	InstallationID  string    `json:"installation_id" binding:"required,max=128"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"gte=0"`
	WorkoutType     string    `json:"workout_type" binding:"max=64"`
}

type SessionHandler struct {
	history domain.SessionHistoryRepository
	metrics *metrics.ReminderMetrics
}

func NewSessionHandler(history domain.SessionHistoryRepository, reminderMetrics *metrics.ReminderMetrics) *SessionHandler {
	return &SessionHandler{
		history: history,
		metrics: reminderMetrics,
	}
}

func (h *SessionHandler) HandleCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	session := &domain.WorkoutSession{
		ID:              req.ID,
		InstallationID:  req.InstallationID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		WorkoutType:     req.WorkoutType,
	}

	if err := h.history.SaveSession(ctx, session); err != nil {
		if errors.Is(err, domain.ErrInvalidSession) {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		slog.ErrorContext(ctx, "failed to save workout session",
			slog.String("installation_id", req.InstallationID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusServiceUnavailable, "store_error", "failed to save session")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSessionLogged(ctx, session.WorkoutType)
	}

	c.JSON(http.StatusCreated, session)
}
