package domain

import "time"

type WorkoutSession struct {
	ID              string    `json:"id"`
	InstallationID  string    `json:"installation_id"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	WorkoutType     string    `json:"workout_type"`
}
