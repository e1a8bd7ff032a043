package domain

import "time"

// SessionStats is a snapshot of workout behaviour, rebuilt on every run.
type SessionStats struct {
	LastSessionAt         *time.Time
	SessionCountLast7Days int
	StreakDays            int
	WorkedOutToday        bool
	MostCommonWorkoutHour *int
}

func (s SessionStats) HasHistory() bool {
	return s.LastSessionAt != nil
}
