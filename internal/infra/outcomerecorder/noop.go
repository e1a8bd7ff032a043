package outcomerecorder

import (
	"context"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.OutcomeRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) Record(_ context.Context, _ domain.OutcomeRecord) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
