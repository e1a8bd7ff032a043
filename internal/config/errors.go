package config

import "errors"

var (
	ErrRedisAddrMissing  = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB    = errors.New("REDIS_DB must be a valid integer")
	ErrInvalidTimezone   = errors.New("REMINDER_DEFAULT_TIMEZONE must be an IANA time zone")
	ErrHistoryDSNMissing = errors.New("HISTORY_DB_DSN is required")
)
