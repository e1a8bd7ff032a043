package history

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

// sessionRecord stores the start as Unix milliseconds so range scans compare
// integers regardless of the zone the session was logged in.
type sessionRecord struct {
	ID              string `gorm:"primaryKey;size:64"`
	InstallationID  string `gorm:"size:128;not null;index:idx_sessions_installation_start,priority:1"`
	StartUnixMilli  int64  `gorm:"not null;index:idx_sessions_installation_start,priority:2"`
	DurationMinutes int    `gorm:"not null"`
	WorkoutType     string `gorm:"size:64"`
	CreatedAt       time.Time
}

func (sessionRecord) TableName() string {
	return "workout_sessions"
}

func (r sessionRecord) toDomain() domain.WorkoutSession {
	return domain.WorkoutSession{
		ID:              r.ID,
		InstallationID:  r.InstallationID,
		StartTime:       time.UnixMilli(r.StartUnixMilli).UTC(),
		DurationMinutes: r.DurationMinutes,
		WorkoutType:     r.WorkoutType,
	}
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) domain.SessionHistoryRepository {
	return &sessionRepository{db: db}
}

// dayRange converts the inclusive calendar range [from, to] in loc into a
// half-open millisecond range.
func dayRange(from, to domain.Date, loc *time.Location) (int64, int64) {
	return from.Start(loc).UnixMilli(), to.AddDays(1).Start(loc).UnixMilli()
}

func (r *sessionRepository) scoped(ctx context.Context, installationID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&sessionRecord{}).Where("installation_id = ?", installationID)
}

func (r *sessionRepository) CountSessionsOnDate(ctx context.Context, installationID string, date domain.Date, loc *time.Location) (int, error) {
	return r.CountSessionsInRange(ctx, installationID, date, date, loc)
}

func (r *sessionRepository) CountSessionsInRange(ctx context.Context, installationID string, from, to domain.Date, loc *time.Location) (int, error) {
	start, end := dayRange(from, to, loc)

	var count int64
	err := r.scoped(ctx, installationID).
		Where("start_unix_milli >= ? AND start_unix_milli < ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: count sessions: %w", ErrDatabase, err)
	}

	return int(count), nil
}

func (r *sessionRepository) LastSessionStartTime(ctx context.Context, installationID string) (*time.Time, error) {
	var record sessionRecord
	err := r.scoped(ctx, installationID).
		Order("start_unix_milli DESC").
		Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: last session: %w", ErrDatabase, err)
	}

	t := time.UnixMilli(record.StartUnixMilli).UTC()
	return &t, nil
}

func (r *sessionRepository) RecentSessions(ctx context.Context, installationID string, limit int) ([]domain.WorkoutSession, error) {
	if limit <= 0 {
		return nil, nil
	}

	var records []sessionRecord
	err := r.scoped(ctx, installationID).
		Order("start_unix_milli DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: recent sessions: %w", ErrDatabase, err)
	}

	sessions := make([]domain.WorkoutSession, 0, len(records))
	for _, rec := range records {
		sessions = append(sessions, rec.toDomain())
	}
	return sessions, nil
}

// SessionDatesInRange returns the distinct calendar days in loc that have at
// least one session, most recent first.
func (r *sessionRepository) SessionDatesInRange(ctx context.Context, installationID string, from, to domain.Date, loc *time.Location) ([]domain.Date, error) {
	start, end := dayRange(from, to, loc)

	var starts []int64
	err := r.scoped(ctx, installationID).
		Where("start_unix_milli >= ? AND start_unix_milli < ?", start, end).
		Order("start_unix_milli DESC").
		Pluck("start_unix_milli", &starts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: session dates: %w", ErrDatabase, err)
	}

	dates := make([]domain.Date, 0, len(starts))
	for _, ms := range starts {
		d := domain.DateIn(time.UnixMilli(ms), loc)
		if len(dates) > 0 && dates[len(dates)-1] == d {
			continue
		}
		dates = append(dates, d)
	}
	return slices.Clip(dates), nil
}

// SaveSession inserts the session. Re-sending a session with the same id is a no-op.
func (r *sessionRepository) SaveSession(ctx context.Context, session *domain.WorkoutSession) error {
	if session == nil || session.InstallationID == "" {
		return fmt.Errorf("%w: installation id is required", domain.ErrInvalidSession)
	}
	if session.StartTime.IsZero() {
		return fmt.Errorf("%w: start time is required", domain.ErrInvalidSession)
	}
	if session.DurationMinutes < 0 {
		return fmt.Errorf("%w: negative duration", domain.ErrInvalidSession)
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}

	record := sessionRecord{
		ID:              session.ID,
		InstallationID:  session.InstallationID,
		StartUnixMilli:  session.StartTime.UnixMilli(),
		DurationMinutes: session.DurationMinutes,
		WorkoutType:     session.WorkoutType,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("%w: save session: %w", ErrDatabase, err)
	}
	return nil
}
