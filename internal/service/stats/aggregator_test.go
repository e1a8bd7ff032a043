package stats

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

var errHistoryDown = errors.New("history store unavailable")

func TestComputeStreak(t *testing.T) {
	today := domain.Date{Year: 2024, Month: time.March, Day: 10}

	tests := []struct {
		name  string
		dates []domain.Date
		want  int
	}{
		{
			name:  "no history",
			dates: nil,
			want:  0,
		},
		{
			name:  "three days ending today",
			dates: []domain.Date{today, today.AddDays(-1), today.AddDays(-2)},
			want:  3,
		},
		{
			name:  "gap stops the walk",
			dates: []domain.Date{today, today.AddDays(-1), today.AddDays(-2), today.AddDays(-4)},
			want:  3,
		},
		{
			name:  "today missing falls back to yesterday",
			dates: []domain.Date{today.AddDays(-1), today.AddDays(-2)},
			want:  2,
		},
		{
			name:  "only an old session",
			dates: []domain.Date{today.AddDays(-5)},
			want:  0,
		},
		{
			name:  "today only",
			dates: []domain.Date{today},
			want:  1,
		},
		{
			name:  "duplicates are ignored",
			dates: []domain.Date{today, today, today.AddDays(-1)},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeStreak(tt.dates, today); got != tt.want {
				t.Errorf("ComputeStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeStreak_MonthBoundary(t *testing.T) {
	today := domain.Date{Year: 2024, Month: time.March, Day: 1}
	dates := []domain.Date{
		today,
		{Year: 2024, Month: time.February, Day: 29},
		{Year: 2024, Month: time.February, Day: 28},
	}

	if got := ComputeStreak(dates, today); got != 3 {
		t.Errorf("ComputeStreak() = %d, want 3", got)
	}
}

func TestMostCommonHour(t *testing.T) {
	loc := time.UTC
	at := func(day, hour int) domain.WorkoutSession {
		return domain.WorkoutSession{StartTime: time.Date(2024, 3, day, hour, 15, 0, 0, loc)}
	}

	tests := []struct {
		name     string
		sessions []domain.WorkoutSession
		want     *int
	}{
		{name: "no sessions", sessions: nil, want: nil},
		{name: "single session", sessions: []domain.WorkoutSession{at(1, 6)}, want: intPtr(6)},
		{
			name:     "clear mode",
			sessions: []domain.WorkoutSession{at(9, 18), at(8, 7), at(7, 18), at(6, 18)},
			want:     intPtr(18),
		},
		{
			name:     "tie resolves to most recent",
			sessions: []domain.WorkoutSession{at(9, 18), at(8, 7), at(7, 7), at(6, 18)},
			want:     intPtr(18),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MostCommonHour(tt.sessions, loc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MostCommonHour() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMostCommonHour_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	sessions := []domain.WorkoutSession{
		{StartTime: time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)},
	}

	got := MostCommonHour(sessions, tokyo)
	if got == nil || *got != 19 {
		t.Errorf("MostCommonHour() = %v, want 19", got)
	}
}

func TestAggregator_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := domain.NewMockSessionHistoryRepository(ctrl)

	loc := time.UTC
	now := time.Date(2024, 3, 10, 21, 0, 0, 0, loc)
	today := domain.DateOf(now)
	last := now.Add(-20 * time.Hour)

	mockHistory.EXPECT().
		LastSessionStartTime(gomock.Any(), "inst-1").
		Return(&last, nil)
	mockHistory.EXPECT().
		CountSessionsOnDate(gomock.Any(), "inst-1", today, loc).
		Return(0, nil)
	mockHistory.EXPECT().
		CountSessionsInRange(gomock.Any(), "inst-1", today.AddDays(-6), today, loc).
		Return(3, nil)
	mockHistory.EXPECT().
		SessionDatesInRange(gomock.Any(), "inst-1", today.AddDays(-30), today, loc).
		Return([]domain.Date{today.AddDays(-1), today.AddDays(-2), today.AddDays(-3)}, nil)
	mockHistory.EXPECT().
		RecentSessions(gomock.Any(), "inst-1", 14).
		Return([]domain.WorkoutSession{{StartTime: last}}, nil)

	agg := NewAggregator(mockHistory, Config{})
	got := agg.GetStats(context.Background(), "inst-1", now)

	want := domain.SessionStats{
		LastSessionAt:         &last,
		SessionCountLast7Days: 3,
		StreakDays:            3,
		WorkedOutToday:        false,
		MostCommonWorkoutHour: intPtr(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_GetStats_DegradesFailedFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := domain.NewMockSessionHistoryRepository(ctrl)

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	today := domain.DateOf(now)

	mockHistory.EXPECT().
		LastSessionStartTime(gomock.Any(), gomock.Any()).
		Return(nil, errHistoryDown)
	mockHistory.EXPECT().
		CountSessionsOnDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(1, nil)
	mockHistory.EXPECT().
		CountSessionsInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, errHistoryDown)
	mockHistory.EXPECT().
		SessionDatesInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.Date{today}, nil)
	mockHistory.EXPECT().
		RecentSessions(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errHistoryDown)

	agg := NewAggregator(mockHistory, Config{})
	got := agg.GetStats(context.Background(), "inst-1", now)

	want := domain.SessionStats{
		LastSessionAt:         nil,
		SessionCountLast7Days: 0,
		StreakDays:            1,
		WorkedOutToday:        true,
		MostCommonWorkoutHour: nil,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregator_GetStats_AllLookupsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := domain.NewMockSessionHistoryRepository(ctrl)
	mockHistory.EXPECT().LastSessionStartTime(gomock.Any(), gomock.Any()).Return(nil, errHistoryDown)
	mockHistory.EXPECT().CountSessionsOnDate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errHistoryDown)
	mockHistory.EXPECT().CountSessionsInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errHistoryDown)
	mockHistory.EXPECT().SessionDatesInRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errHistoryDown)
	mockHistory.EXPECT().RecentSessions(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errHistoryDown)

	agg := NewAggregator(mockHistory, Config{StreakLookbackDays: 10, HourModeLookbackSessions: 5})
	got := agg.GetStats(context.Background(), "inst-1", time.Now())

	if diff := cmp.Diff(domain.SessionStats{}, got); diff != "" {
		t.Errorf("GetStats() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewAggregator_KeepsConfiguredLookbacks(t *testing.T) {
	agg := NewAggregator(nil, Config{StreakLookbackDays: 45, HourModeLookbackSessions: 20})

	if agg.cfg.StreakLookbackDays != 45 {
		t.Errorf("StreakLookbackDays: got %d, want 45", agg.cfg.StreakLookbackDays)
	}
	if agg.cfg.HourModeLookbackSessions != 20 {
		t.Errorf("HourModeLookbackSessions: got %d, want 20", agg.cfg.HourModeLookbackSessions)
	}
}

func TestAggregator_GetStats_RespectsLookupLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := domain.NewMockSessionHistoryRepository(ctrl)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	today := domain.DateOf(now)
	last := now.Add(-2 * time.Hour)

	var inFlight, peak atomic.Int32
	track := func() {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
	}

	mockHistory.EXPECT().
		LastSessionStartTime(gomock.Any(), "inst-1").
		DoAndReturn(func(context.Context, string) (*time.Time, error) {
			track()
			return &last, nil
		})
	mockHistory.EXPECT().
		CountSessionsOnDate(gomock.Any(), "inst-1", today, time.UTC).
		DoAndReturn(func(context.Context, string, domain.Date, *time.Location) (int, error) {
			track()
			return 1, nil
		})
	mockHistory.EXPECT().
		CountSessionsInRange(gomock.Any(), "inst-1", gomock.Any(), today, time.UTC).
		DoAndReturn(func(context.Context, string, domain.Date, domain.Date, *time.Location) (int, error) {
			track()
			return 2, nil
		})
	mockHistory.EXPECT().
		SessionDatesInRange(gomock.Any(), "inst-1", gomock.Any(), today, time.UTC).
		DoAndReturn(func(context.Context, string, domain.Date, domain.Date, *time.Location) ([]domain.Date, error) {
			track()
			return []domain.Date{today, today.AddDays(-1)}, nil
		})
	mockHistory.EXPECT().
		RecentSessions(gomock.Any(), "inst-1", 14).
		DoAndReturn(func(context.Context, string, int) ([]domain.WorkoutSession, error) {
			track()
			return []domain.WorkoutSession{{StartTime: last}}, nil
		})

	agg := NewAggregator(mockHistory, Config{MaxConcurrentLookups: 1})
	got := agg.GetStats(context.Background(), "inst-1", now)

	want := domain.SessionStats{
		LastSessionAt:         &last,
		SessionCountLast7Days: 2,
		StreakDays:            2,
		WorkedOutToday:        true,
		MostCommonWorkoutHour: intPtr(10),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetStats() mismatch (-want +got):\n%s", diff)
	}
	if p := peak.Load(); p != 1 {
		t.Errorf("peak concurrent lookups = %d, want 1", p)
	}
}

func intPtr(v int) *int {
	return &v
}

func TestAggregator_MostCommonWorkoutHour(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockHistory := domain.NewMockSessionHistoryRepository(ctrl)
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	gomock.InOrder(
		mockHistory.EXPECT().
			RecentSessions(gomock.Any(), "inst-1", 14).
			Return([]domain.WorkoutSession{{StartTime: now.Add(-5 * time.Hour)}}, nil),
		mockHistory.EXPECT().
			RecentSessions(gomock.Any(), "inst-1", 14).
			Return(nil, errHistoryDown),
	)

	agg := NewAggregator(mockHistory, Config{})

	if got := agg.MostCommonWorkoutHour(context.Background(), "inst-1", now); got == nil || *got != 7 {
		t.Errorf("MostCommonWorkoutHour() = %v, want 7", got)
	}
	if got := agg.MostCommonWorkoutHour(context.Background(), "inst-1", now); got != nil {
		t.Errorf("MostCommonWorkoutHour() on failure = %v, want nil", *got)
	}
}
