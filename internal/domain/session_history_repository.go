package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=session_history_repository.go -destination=session_history_repository_mock.go -package=domain

// SessionHistoryRepository reads and records logged workouts. Day boundaries are
// evaluated in loc.
type SessionHistoryRepository interface {
	CountSessionsOnDate(ctx context.Context, installationID string, date Date, loc *time.Location) (int, error)
	CountSessionsInRange(ctx context.Context, installationID string, from, to Date, loc *time.Location) (int, error)
	LastSessionStartTime(ctx context.Context, installationID string) (*time.Time, error)
	RecentSessions(ctx context.Context, installationID string, limit int) ([]WorkoutSession, error)
	SessionDatesInRange(ctx context.Context, installationID string, from, to Date, loc *time.Location) ([]Date, error)
	SaveSession(ctx context.Context, session *WorkoutSession) error
}
