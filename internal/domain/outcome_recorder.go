package domain

import "context"

//go:generate mockgen -source=outcome_recorder.go -destination=outcome_recorder_mock.go -package=domain

type OutcomeRecorder interface {
	Record(ctx context.Context, record OutcomeRecord) error
	Close() error
}
