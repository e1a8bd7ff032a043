package repository

import "errors"

var (
	ErrRedisConnection        = errors.New("redis connection error")
	ErrInvalidPreferencesData = errors.New("invalid preferences data")
	ErrInvalidWakeData        = errors.New("invalid wake data")
)
