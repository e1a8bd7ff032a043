package policy

import (
	"math/rand/v2"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

const (
	RouteWorkoutStart = "workout/start"
	RouteStreak       = "progress/streak"
)

type template struct {
	title string
	body  string
}

var streakRescueTemplates = []template{
	{title: "Your streak is on the line", body: "A short session tonight keeps your streak alive."},
	{title: "Don't break the chain", body: "There's still time to log a workout today."},
	{title: "Protect your streak", body: "Ten minutes is enough to keep the run going."},
}

var inactiveTemplates = []template{
	{title: "We miss you", body: "It's been a couple of days. Ready for an easy comeback session?"},
	{title: "Time to get moving", body: "Pick up where you left off with a quick workout."},
	{title: "Your body will thank you", body: "A light session today is a great restart."},
}

var consistencyBoostTemplates = []template{
	{title: "It's your usual workout time", body: "This is when you usually train. Let's go!"},
	{title: "Build the habit", body: "One more session this week keeps you on track."},
	{title: "Right on schedule", body: "Your regular workout slot is here."},
}

func templatesFor(intent domain.ReminderIntent) ([]template, string, bool) {
	switch intent {
	case domain.IntentStreakRescue:
		return streakRescueTemplates, RouteStreak, true
	case domain.IntentInactive:
		return inactiveTemplates, RouteWorkoutStart, true
	case domain.IntentConsistencyBoost:
		return consistencyBoostTemplates, RouteWorkoutStart, true
	case domain.IntentNone:
		return nil, "", false
	default:
		return nil, "", false
	}
}

// Route returns the fixed navigation target for intent.
func Route(intent domain.ReminderIntent) (string, bool) {
	_, route, ok := templatesFor(intent)
	return route, ok
}

// Resolve picks a message for intent uniformly from its pool. It reports false
// for IntentNone or an unknown intent.
func Resolve(intent domain.ReminderIntent, rng *rand.Rand) (domain.Message, bool) {
	templates, route, ok := templatesFor(intent)
	if !ok || len(templates) == 0 {
		return domain.Message{}, false
	}

	var idx int
	if rng != nil {
		idx = rng.IntN(len(templates))
	} else {
		idx = rand.IntN(len(templates))
	}
	tmpl := templates[idx]

	return domain.Message{
		Intent: intent,
		Title:  tmpl.title,
		Body:   tmpl.body,
		Route:  route,
	}, true
}
