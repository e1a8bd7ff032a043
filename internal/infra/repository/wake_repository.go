package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-smart-reminder/internal/domain"
)

const (
	wakeKeyPrefix = "reminder:wake:"

	// Outlives the longest possible delay (one day) with room for redelivery.
	wakeTTL = 72 * time.Hour
)

type wakeRecord struct {
	Name           string    `json:"name"`
	TaskID         string    `json:"task_id"`
	InstallationID string    `json:"installation_id"`
	FireAt         time.Time `json:"fire_at"`
	ArmedAt        time.Time `json:"armed_at"`
}

type wakeRepository struct {
	client *redis.Client
}

func NewWakeRepository(client *redis.Client) domain.WakeRepository {
	return &wakeRepository{
		client: client,
	}
}

func (r *wakeRepository) GetWake(ctx context.Context, name string) (*domain.ScheduledWake, error) {
	data, err := r.client.Get(ctx, wakeKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrWakeNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	var record wakeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidWakeData
	}

	return &domain.ScheduledWake{
		Name:           record.Name,
		TaskID:         record.TaskID,
		InstallationID: record.InstallationID,
		FireAt:         record.FireAt,
		ArmedAt:        record.ArmedAt,
	}, nil
}

func (r *wakeRepository) SaveWake(ctx context.Context, wake *domain.ScheduledWake) error {
	if wake == nil || wake.Name == "" {
		return ErrInvalidWakeData
	}

	data, err := json.Marshal(wakeRecord{
		Name:           wake.Name,
		TaskID:         wake.TaskID,
		InstallationID: wake.InstallationID,
		FireAt:         wake.FireAt,
		ArmedAt:        wake.ArmedAt,
	})
	if err != nil {
		return ErrInvalidWakeData
	}

	if err := r.client.Set(ctx, wakeKeyPrefix+wake.Name, data, wakeTTL).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}

func (r *wakeRepository) DeleteWake(ctx context.Context, name string) error {
	if err := r.client.Del(ctx, wakeKeyPrefix+name).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}
