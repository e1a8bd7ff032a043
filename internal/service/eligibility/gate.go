package eligibility

import (
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
	"github.com/KasumiMercury/primind-smart-reminder/internal/service/timewindow"
)

const DefaultMinSpacing = 12 * time.Hour

type Gate struct {
	window     *timewindow.Policy
	minSpacing time.Duration
}

func NewGate(window *timewindow.Policy, minSpacing time.Duration) *Gate {
	if window == nil {
		window = timewindow.NewPolicy()
	}
	if minSpacing <= 0 {
		minSpacing = DefaultMinSpacing
	}
	return &Gate{
		window:     window,
		minSpacing: minSpacing,
	}
}

// Check evaluates the cross-cycle constraints cheapest first. now must already be
// in the installation's zone; calendar days are compared there.
func (g *Gate) Check(prefs *domain.ReminderPreferences, now time.Time) (bool, domain.SkipReason) {
	if prefs == nil || !prefs.RemindersEnabled() {
		return false, domain.ReasonDisabled
	}

	if prefs.QuietHoursEnabled && g.window.IsInQuietHours(timewindow.Of(now)) {
		return false, domain.ReasonQuietHours
	}

	if prefs.LastReminderSentAt == nil {
		return true, ""
	}

	last := prefs.LastReminderSentAt.In(now.Location())
	sameDay := domain.DateOf(last) == domain.DateOf(now)
	if sameDay || now.Sub(last) < g.minSpacing {
		return false, domain.ReasonRateLimited
	}

	return true, ""
}

func (g *Gate) IsSendEligible(prefs *domain.ReminderPreferences, now time.Time) bool {
	ok, _ := g.Check(prefs, now)
	return ok
}
