package domain

import "time"

// SkipReason explains the result of one reminder run.
type SkipReason string

const (
	ReasonSent           SkipReason = "sent"
	ReasonDisabled       SkipReason = "disabled"
	ReasonQuietHours     SkipReason = "quiet_hours"
	ReasonWorkedOutToday SkipReason = "worked_out_today"
	ReasonRateLimited    SkipReason = "rate_limited"
	ReasonNoIntent       SkipReason = "no_intent"
	ReasonSendFailed     SkipReason = "send_failed"
	ReasonInternalError  SkipReason = "internal_error"
	ReasonBusy           SkipReason = "busy"
)

func (r SkipReason) String() string {
	return string(r)
}

type OutcomeRecord struct {
	InstallationID string
	RunAt          time.Time
	Sent           bool
	Reason         SkipReason
	Intent         ReminderIntent
	NextWakeAt     time.Time
	RearmFailed    bool
}
