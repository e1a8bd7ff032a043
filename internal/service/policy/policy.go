package policy

import (
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/timewindow"
)

const (
	DefaultInactiveAfter          = 48 * time.Hour
	DefaultConsistencyMaxSessions = 2
)

var DefaultStreakRescueFrom = timewindow.TimeOfDay{Hour: 20, Minute: 30}

type Policy struct {
	window *timewindow.Policy

	StreakRescueFrom       timewindow.TimeOfDay
	InactiveAfter          time.Duration
	ConsistencyMaxSessions int
}

func NewPolicy(window *timewindow.Policy) *Policy {
	if window == nil {
		window = timewindow.NewPolicy()
	}
	return &Policy{
		window:                 window,
		StreakRescueFrom:       DefaultStreakRescueFrom,
		InactiveAfter:          DefaultInactiveAfter,
		ConsistencyMaxSessions: DefaultConsistencyMaxSessions,
	}
}

// SelectIntent picks the first matching rule in priority order. The caller must
// already have ruled out stats.WorkedOutToday.
func (p *Policy) SelectIntent(stats domain.SessionStats, now time.Time) domain.ReminderIntent {
	clock := timewindow.Of(now)

	if stats.StreakDays > 0 && !clock.Before(p.StreakRescueFrom) {
		return domain.IntentStreakRescue
	}

	if stats.HasHistory() && now.Sub(*stats.LastSessionAt) >= p.InactiveAfter {
		return domain.IntentInactive
	}

	if stats.SessionCountLast7Days < p.ConsistencyMaxSessions {
		target := p.window.ComputeTargetTime(stats.MostCommonWorkoutHour)
		if p.window.IsWithinHabitWindow(clock, target) {
			return domain.IntentConsistencyBoost
		}
	}

	return domain.IntentNone
}
