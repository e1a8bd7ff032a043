package stats

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/observability/tracing"
)

const (
	DefaultStreakLookbackDays       = 30
	DefaultHourModeLookbackSessions = 14

	weeklyWindowDays = 7
)

type Config struct {
	StreakLookbackDays       int
	HourModeLookbackSessions int
	// MaxConcurrentLookups caps the history queries in flight per GetStats
	// call. Zero runs all lookups at once.
	MaxConcurrentLookups int
}

type Aggregator struct {
	history domain.SessionHistoryRepository
	cfg     Config
}

func NewAggregator(history domain.SessionHistoryRepository, cfg Config) *Aggregator {
	if cfg.StreakLookbackDays <= 0 {
		cfg.StreakLookbackDays = DefaultStreakLookbackDays
	}
	if cfg.HourModeLookbackSessions <= 0 {
		cfg.HourModeLookbackSessions = DefaultHourModeLookbackSessions
	}
	return &Aggregator{
		history: history,
		cfg:     cfg,
	}
}

// GetStats builds a snapshot for the installation as of now. Calendar days are
// evaluated in now's location. A failing lookup leaves only its own field at the
// zero value; GetStats never returns an error.
func (a *Aggregator) GetStats(ctx context.Context, installationID string, now time.Time) domain.SessionStats {
	ctx, span := tracing.StartStatsSpan(ctx, installationID)
	defer span.End()

	loc := now.Location()
	today := domain.DateOf(now)

	var (
		stats      domain.SessionStats
		todayCount int
		dates      []domain.Date
		recent     []domain.WorkoutSession
		failed     int
	)

	// Each lookup owns one variable and one slot in errs. The closures return
	// nil so a failing lookup never cancels gctx for its siblings; failures are
	// degraded per field after Wait.
	errs := make([]error, 5)
	g, gctx := errgroup.WithContext(ctx)
	if a.cfg.MaxConcurrentLookups > 0 {
		g.SetLimit(a.cfg.MaxConcurrentLookups)
	}

	g.Go(func() error {
		stats.LastSessionAt, errs[0] = a.history.LastSessionStartTime(gctx, installationID)
		return nil
	})
	g.Go(func() error {
		todayCount, errs[1] = a.history.CountSessionsOnDate(gctx, installationID, today, loc)
		return nil
	})
	g.Go(func() error {
		from := today.AddDays(-(weeklyWindowDays - 1))
		stats.SessionCountLast7Days, errs[2] = a.history.CountSessionsInRange(gctx, installationID, from, today, loc)
		return nil
	})
	g.Go(func() error {
		from := today.AddDays(-a.cfg.StreakLookbackDays)
		dates, errs[3] = a.history.SessionDatesInRange(gctx, installationID, from, today, loc)
		return nil
	})
	g.Go(func() error {
		recent, errs[4] = a.history.RecentSessions(gctx, installationID, a.cfg.HourModeLookbackSessions)
		return nil
	})
	_ = g.Wait()

	fields := []string{"last_session_at", "worked_out_today", "session_count_last_7_days", "streak_days", "most_common_workout_hour"}
	for i, err := range errs {
		if err == nil {
			continue
		}
		failed++
		slog.WarnContext(ctx, "history lookup failed, field degraded",
			slog.String("installation_id", installationID),
			slog.String("field", fields[i]),
			slog.String("error", err.Error()),
		)
	}

	if errs[0] != nil {
		stats.LastSessionAt = nil
	}
	if errs[1] == nil {
		stats.WorkedOutToday = todayCount > 0
	}
	if errs[2] != nil || stats.SessionCountLast7Days < 0 {
		stats.SessionCountLast7Days = 0
	}
	if errs[3] == nil {
		stats.StreakDays = ComputeStreak(dates, today)
	}
	if errs[4] == nil {
		stats.MostCommonWorkoutHour = MostCommonHour(recent, loc)
	}

	tracing.RecordStatsResult(span, stats.StreakDays, stats.SessionCountLast7Days, stats.WorkedOutToday, failed)

	slog.DebugContext(ctx, "session stats computed",
		slog.String("installation_id", installationID),
		slog.Int("streak_days", stats.StreakDays),
		slog.Int("session_count_last_7_days", stats.SessionCountLast7Days),
		slog.Bool("worked_out_today", stats.WorkedOutToday),
		slog.Int("degraded_fields", failed),
	)

	return stats
}

// MostCommonWorkoutHour reads only the recent sessions needed to place the next
// wake. It returns nil when there is no history or the lookup fails.
func (a *Aggregator) MostCommonWorkoutHour(ctx context.Context, installationID string, now time.Time) *int {
	recent, err := a.history.RecentSessions(ctx, installationID, a.cfg.HourModeLookbackSessions)
	if err != nil {
		slog.WarnContext(ctx, "history lookup failed, using default target",
			slog.String("installation_id", installationID),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return MostCommonHour(recent, now.Location())
}

// ComputeStreak counts consecutive days present in dates ending today, or ending
// yesterday when today has no entry yet.
func ComputeStreak(dates []domain.Date, today domain.Date) int {
	present := make(map[domain.Date]struct{}, len(dates))
	for _, d := range dates {
		present[d] = struct{}{}
	}

	day := today
	if _, ok := present[day]; !ok {
		day = today.AddDays(-1)
	}

	streak := 0
	for {
		if _, ok := present[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDays(-1)
	}
}

// MostCommonHour returns the modal start hour in loc. Ties go to the hour that
// appears first in sessions, which are ordered most recent first.
func MostCommonHour(sessions []domain.WorkoutSession, loc *time.Location) *int {
	if len(sessions) == 0 {
		return nil
	}

	counts := make(map[int]int, 24)
	for _, s := range sessions {
		counts[s.StartTime.In(loc).Hour()]++
	}

	best, bestCount := -1, 0
	for _, s := range sessions {
		h := s.StartTime.In(loc).Hour()
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}

	return &best
}
