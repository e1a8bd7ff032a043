package timewindow

import (
	"fmt"
	"time"
)

const (
	minutesPerDay = 24 * 60

	// DefaultHabitWindowMinutes is the one-sided width of the habit window.
	DefaultHabitWindowMinutes = 30
	// TargetMinute is the minute past the historical hour the nudge is anchored to.
	TargetMinute = 30
)

var (
	DefaultTarget          = TimeOfDay{Hour: 19, Minute: 30}
	DefaultQuietHoursStart = TimeOfDay{Hour: 22, Minute: 0}
	DefaultQuietHoursEnd   = TimeOfDay{Hour: 8, Minute: 0}
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func Of(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	return Of(t), nil
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the instant of t on the calendar day of day, in day's zone.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// Policy holds the tunable clock windows. The zero value is not usable; use NewPolicy.
type Policy struct {
	DefaultTarget      TimeOfDay
	HabitWindowMinutes int
	QuietHoursStart    TimeOfDay
	QuietHoursEnd      TimeOfDay
}

func NewPolicy() *Policy {
	return &Policy{
		DefaultTarget:      DefaultTarget,
		HabitWindowMinutes: DefaultHabitWindowMinutes,
		QuietHoursStart:    DefaultQuietHoursStart,
		QuietHoursEnd:      DefaultQuietHoursEnd,
	}
}

// ComputeTargetTime anchors the nudge at half past the user's usual hour.
func (p *Policy) ComputeTargetTime(mostCommonHour *int) TimeOfDay {
	if mostCommonHour == nil {
		return p.DefaultTarget
	}
	return TimeOfDay{Hour: min(max(*mostCommonHour, 0), 23), Minute: TargetMinute}
}

func (p *Policy) IsWithinHabitWindow(now, target TimeOfDay) bool {
	return CircularDistance(now, target) <= p.HabitWindowMinutes
}

// IsInQuietHours handles windows that wrap past midnight.
func (p *Policy) IsInQuietHours(now TimeOfDay) bool {
	start, end := p.QuietHoursStart.Minutes(), p.QuietHoursEnd.Minutes()
	m := now.Minutes()
	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

// NextOccurrence returns the next instant strictly after now whose wall clock in
// now's zone equals target.
func (p *Policy) NextOccurrence(now time.Time, target TimeOfDay) time.Time {
	next := target.On(now)
	if !next.After(now) {
		next = target.On(now.AddDate(0, 0, 1))
	}
	return next
}

// DelayUntil is the non-negative delay until the next occurrence of target.
func (p *Policy) DelayUntil(now time.Time, target TimeOfDay) time.Duration {
	return max(p.NextOccurrence(now, target).Sub(now), 0)
}

// CircularDistance is the minute distance between two clock times around midnight.
func CircularDistance(a, b TimeOfDay) int {
	d := a.Minutes() - b.Minutes()
	if d < 0 {
		d = -d
	}
	return min(d, minutesPerDay-d)
}

var defaultPolicy = NewPolicy()

func ComputeTargetTime(mostCommonHour *int) TimeOfDay {
	return defaultPolicy.ComputeTargetTime(mostCommonHour)
}

func IsWithinHabitWindow(now, target TimeOfDay) bool {
	return defaultPolicy.IsWithinHabitWindow(now, target)
}

func IsInQuietHours(now TimeOfDay) bool {
	return defaultPolicy.IsInQuietHours(now)
}
