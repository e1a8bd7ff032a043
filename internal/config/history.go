package config

import (
	"os"
	"time"
)

const (
	historyDSNEnv          = "HISTORY_DB_DSN"
	historyMaxOpenConnsEnv = "HISTORY_DB_MAX_OPEN_CONNS"
	historySlowQueryEnv    = "HISTORY_DB_SLOW_QUERY"

	defaultHistoryDSN       = "file:history.db?_journal_mode=WAL&_busy_timeout=5000"
	defaultHistoryOpenConns = 4
	defaultHistorySlowQuery = 200 * time.Millisecond
)

type HistoryConfig struct {
	DSN          string
	MaxOpenConns int
	SlowQuery    time.Duration
}

func LoadHistoryConfig() *HistoryConfig {
	dsn := os.Getenv(historyDSNEnv)
	if dsn == "" {
		dsn = defaultHistoryDSN
	}

	return &HistoryConfig{
		DSN:          dsn,
		MaxOpenConns: positiveInt(historyMaxOpenConnsEnv, defaultHistoryOpenConns),
		SlowQuery:    positiveDuration(historySlowQueryEnv, defaultHistorySlowQuery),
	}
}
