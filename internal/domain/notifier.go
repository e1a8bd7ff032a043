package domain

import "context"

//go:generate mockgen -source=notifier.go -destination=notifier_mock.go -package=domain

type Notifier interface {
	Send(ctx context.Context, installationID string, msg Message) error
}
