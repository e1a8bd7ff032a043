package policy

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

func ptrTime(t time.Time) *time.Time {
	return &t
}

func ptrInt(v int) *int {
	return &v
}

func TestPolicy_SelectIntent(t *testing.T) {
	p := NewPolicy(nil)
	day := func(hour, minute int) time.Time {
		return time.Date(2024, 3, 10, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		stats domain.SessionStats
		now   time.Time
		want  domain.ReminderIntent
	}{
		{
			name:  "live streak late in the day",
			stats: domain.SessionStats{StreakDays: 3, LastSessionAt: ptrTime(day(21, 0).Add(-20 * time.Hour))},
			now:   day(21, 0),
			want:  domain.IntentStreakRescue,
		},
		{
			name:  "streak rescue starts at 20:30",
			stats: domain.SessionStats{StreakDays: 1},
			now:   day(20, 30),
			want:  domain.IntentStreakRescue,
		},
		{
			name:  "streak before 20:30 is not rescued",
			stats: domain.SessionStats{StreakDays: 1, SessionCountLast7Days: 4},
			now:   day(20, 29),
			want:  domain.IntentNone,
		},
		{
			name:  "inactive for 48 hours",
			stats: domain.SessionStats{LastSessionAt: ptrTime(day(12, 0).Add(-48 * time.Hour)), SessionCountLast7Days: 3},
			now:   day(12, 0),
			want:  domain.IntentInactive,
		},
		{
			name:  "47 hours is not inactive",
			stats: domain.SessionStats{LastSessionAt: ptrTime(day(12, 0).Add(-47 * time.Hour)), SessionCountLast7Days: 3},
			now:   day(12, 0),
			want:  domain.IntentNone,
		},
		{
			name:  "no history never counts as inactive",
			stats: domain.SessionStats{SessionCountLast7Days: 5},
			now:   day(12, 0),
			want:  domain.IntentNone,
		},
		{
			name:  "low weekly count inside habit window",
			stats: domain.SessionStats{SessionCountLast7Days: 1, MostCommonWorkoutHour: ptrInt(7)},
			now:   day(7, 45),
			want:  domain.IntentConsistencyBoost,
		},
		{
			name:  "low weekly count outside habit window",
			stats: domain.SessionStats{SessionCountLast7Days: 1, MostCommonWorkoutHour: ptrInt(7)},
			now:   day(9, 0),
			want:  domain.IntentNone,
		},
		{
			name:  "default target used without history",
			stats: domain.SessionStats{},
			now:   day(19, 10),
			want:  domain.IntentConsistencyBoost,
		},
		{
			name:  "enough sessions this week",
			stats: domain.SessionStats{SessionCountLast7Days: 2, MostCommonWorkoutHour: ptrInt(7)},
			now:   day(7, 30),
			want:  domain.IntentNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.SelectIntent(tt.stats, tt.now); got != tt.want {
				t.Errorf("SelectIntent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolicy_SelectIntent_PriorityOrder(t *testing.T) {
	p := NewPolicy(nil)

	// Matches streak rescue and consistency boost (target 20:30, within window).
	now := time.Date(2024, 3, 10, 20, 45, 0, 0, time.UTC)
	stats := domain.SessionStats{
		StreakDays:            1,
		SessionCountLast7Days: 1,
		MostCommonWorkoutHour: ptrInt(20),
		LastSessionAt:         ptrTime(now.Add(-72 * time.Hour)),
	}

	if got := p.SelectIntent(stats, now); got != domain.IntentStreakRescue {
		t.Errorf("SelectIntent() = %v, want %v", got, domain.IntentStreakRescue)
	}

	// Without the streak, inactivity outranks consistency.
	stats.StreakDays = 0
	if got := p.SelectIntent(stats, now); got != domain.IntentInactive {
		t.Errorf("SelectIntent() = %v, want %v", got, domain.IntentInactive)
	}
}

func TestResolve(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for _, intent := range domain.AllIntents {
		t.Run(intent.String(), func(t *testing.T) {
			msg, ok := Resolve(intent, rng)
			if !ok {
				t.Fatalf("Resolve(%v) returned ok=false", intent)
			}
			if msg.Intent != intent {
				t.Errorf("Intent: got %v, want %v", msg.Intent, intent)
			}
			if msg.Title == "" || msg.Body == "" {
				t.Errorf("empty message: %+v", msg)
			}
			route, _ := Route(intent)
			if msg.Route != route {
				t.Errorf("Route: got %q, want %q", msg.Route, route)
			}

			templates, _, _ := templatesFor(intent)
			found := false
			for _, tmpl := range templates {
				if tmpl.title == msg.Title && tmpl.body == msg.Body {
					found = true
				}
			}
			if !found {
				t.Errorf("message %+v is not from the %v pool", msg, intent)
			}
		})
	}
}

func TestResolve_None(t *testing.T) {
	if _, ok := Resolve(domain.IntentNone, nil); ok {
		t.Error("Resolve(IntentNone) should report false")
	}
	if _, ok := Resolve(domain.ReminderIntent(99), nil); ok {
		t.Error("Resolve(unknown) should report false")
	}
}

func TestResolve_CoversWholePool(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	seen := make(map[string]bool)

	for range 200 {
		msg, _ := Resolve(domain.IntentInactive, rng)
		seen[msg.Title] = true
	}

	if len(seen) != len(inactiveTemplates) {
		t.Errorf("saw %d distinct messages, want %d", len(seen), len(inactiveTemplates))
	}
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		intent domain.ReminderIntent
		want   string
	}{
		{intent: domain.IntentStreakRescue, want: RouteStreak},
		{intent: domain.IntentInactive, want: RouteWorkoutStart},
		{intent: domain.IntentConsistencyBoost, want: RouteWorkoutStart},
	}

	for _, tt := range tests {
		got, ok := Route(tt.intent)
		if !ok || got != tt.want {
			t.Errorf("Route(%v) = %q, %v; want %q", tt.intent, got, ok, tt.want)
		}
	}
}
