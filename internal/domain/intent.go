package domain

import "fmt"

// ReminderIntent is the closed set of reminder categories the policy can select.
type ReminderIntent int

const (
	IntentNone ReminderIntent = iota
	IntentStreakRescue
	IntentInactive
	IntentConsistencyBoost
)

// AllIntents lists every sendable intent in priority order.
var AllIntents = []ReminderIntent{
	IntentStreakRescue,
	IntentInactive,
	IntentConsistencyBoost,
}

func (i ReminderIntent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentStreakRescue:
		return "streak_rescue"
	case IntentInactive:
		return "inactive"
	case IntentConsistencyBoost:
		return "consistency_boost"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

func (i ReminderIntent) IsNone() bool {
	return i == IntentNone
}

func ParseReminderIntent(s string) (ReminderIntent, error) {
	switch s {
	case "none":
		return IntentNone, nil
	case "streak_rescue":
		return IntentStreakRescue, nil
	case "inactive":
		return IntentInactive, nil
	case "consistency_boost":
		return IntentConsistencyBoost, nil
	default:
		return IntentNone, fmt.Errorf("%w: %q", ErrUnknownIntent, s)
	}
}

func (i ReminderIntent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *ReminderIntent) UnmarshalText(text []byte) error {
	parsed, err := ParseReminderIntent(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Message is the resolved notification content for a sendable intent.
type Message struct {
	Intent ReminderIntent `json:"intent"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Route  string         `json:"route"`
}
